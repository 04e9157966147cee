package models

// Closed enumerations validated at the boundary. Free-form strings are
// rejected before any session transition runs.

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageChinese Language = "Chinese"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageChinese:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "Single Choice"
	QuestionMultipleChoice QuestionType = "Multiple Choice"
	QuestionEssay          QuestionType = "Essay"
	QuestionShortAnswer    QuestionType = "Short Answer"
	QuestionTrueFalse      QuestionType = "True False"
)

func (q QuestionType) Valid() bool {
	switch q {
	case QuestionSingleChoice, QuestionMultipleChoice, QuestionEssay,
		QuestionShortAnswer, QuestionTrueFalse:
		return true
	}
	return false
}

// SessionState is the finite-state tag persisted with every checkpoint.
// Resumption dispatches on this tag, never on a suspended call stack.
type SessionState string

const (
	StateStart              SessionState = "START"
	StateGeneratingQuestion SessionState = "GENERATING_QUESTION"
	StateAwaitingAnswer     SessionState = "AWAITING_ANSWER"
	StateAnalyzingAnswer    SessionState = "ANALYZING_ANSWER"
	StateTerminated         SessionState = "TERMINATED"
)

type TestStatus string

const (
	TestStatusOpen      TestStatus = "open"
	TestStatusStarted   TestStatus = "started"
	TestStatusCompleted TestStatus = "completed"
	TestStatusExpired   TestStatus = "expired"
)
