package models

// Message is one entry in the conversation ledger sent to the language
// model as context. The canonical record of the interview is QAHistory,
// not the ledger.
type Message struct {
	ID      string `bson:"id" json:"id"`
	Role    string `bson:"role" json:"role"`
	Content string `bson:"content" json:"content"`
}

const (
	RoleSystem    = "system"
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Question is produced once per machine iteration by the generator and is
// immutable afterwards. Sequence numbers are 1-based, gapless and strictly
// increasing within a session; the engine owns the numbering.
type Question struct {
	Question       string       `bson:"question" json:"question"`
	SequenceNumber int          `bson:"sequence_number" json:"question_number"`
	Type           QuestionType `bson:"type" json:"question_type"`
	KnowledgePoint string       `bson:"knowledge_point" json:"knowledge_point"`
	Answer         string       `bson:"answer" json:"answer"`
}

// AnswerEvaluation is the evaluator's verdict on one submitted answer.
// It is consumed by a single transition and then discarded except for the
// fields folded into QAHistory.
type AnswerEvaluation struct {
	IsAnswer        bool      `bson:"is_answer" json:"is_answer"`
	Feedback        string    `bson:"feedback" json:"feedback"`
	IsCorrect       bool      `bson:"is_correct" json:"is_correct"`
	AnswerAnalysis  string    `bson:"answer_analysis" json:"answer_analysis"`
	AnswerScore     int       `bson:"answer_score" json:"answer_score"`
	IsInterviewOver bool      `bson:"is_interview_over" json:"is_interview_over"`
	NextQuestion    *Question `bson:"next_question,omitempty" json:"next_question,omitempty"`
}

// QARecord is one completed question/answer/feedback triple. QAHistory is
// append-only; its length equals the number of completed evaluation steps.
type QARecord struct {
	Question  Question `bson:"question" json:"question"`
	Answer    string   `bson:"answer" json:"answer"`
	Feedback  string   `bson:"feedback" json:"feedback"`
	IsCorrect bool     `bson:"is_correct" json:"is_correct"`
	Score     int      `bson:"score" json:"score"`
}

// InterviewResult is created exactly once, at the terminal transition, and
// never mutated afterwards.
type InterviewResult struct {
	Summary             string     `bson:"summary" json:"summary"`
	Score               int        `bson:"score" json:"score"`
	TotalQuestionNumber int        `bson:"total_question_number" json:"total_question_number"`
	CorrectNumber       int        `bson:"correct_number" json:"correct_number"`
	ElapsedSeconds      int64      `bson:"elapsed_seconds" json:"elapsed_seconds"`
	QAHistory           []QARecord `bson:"qa_history" json:"qa_history"`
}
