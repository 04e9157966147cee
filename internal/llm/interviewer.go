package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"interview-service/internal/errs"
	"interview-service/internal/models"
)

// Interviewer implements the engine's generation, evaluation and
// summarization collaborators on top of one chat completions client.
type Interviewer struct {
	client *Client
}

func NewInterviewer(client *Client) *Interviewer {
	return &Interviewer{client: client}
}

func (i *Interviewer) GenerateQuestion(ctx context.Context, session *models.Session) (*models.Question, error) {
	messages := contextMessages(session)
	messages = append(messages, ChatMessage{
		Role: "user",
		Content: fmt.Sprintf(
			"Generate interview question %d now. Respond with a single JSON object with fields: "+
				`"question" (the question text including any choices, starting with "Question %d: ", in %s), `+
				`"question_number" (%d), `+
				`"question_type" (one of "Single Choice", "Multiple Choice", "Essay", "Short Answer", "True False"), `+
				`"knowledge_point" (the knowledge point it targets), `+
				`"answer" (the reference answer).`,
			session.NextSequence(), session.NextSequence(), session.Config.Language, session.NextSequence()),
	})

	content, err := i.client.Complete(ctx, messages, true)
	if err != nil {
		return nil, err
	}
	var question models.Question
	if err := decodeJSON(content, &question); err != nil {
		return nil, errs.Collaboratorf("malformed question payload: %v", err)
	}
	if question.Question == "" {
		return nil, errs.Collaboratorf("question payload missing question text")
	}
	if !question.Type.Valid() {
		question.Type = models.QuestionShortAnswer
	}
	return &question, nil
}

func (i *Interviewer) EvaluateAnswer(ctx context.Context, session *models.Session, question *models.Question, answer string) (*models.AnswerEvaluation, error) {
	messages := contextMessages(session)
	messages = append(messages, ChatMessage{
		Role: "user",
		Content: fmt.Sprintf(
			"The candidate was asked:\n%s\nReference answer: %s\nThe candidate replied:\n%s\n\n"+
				"Evaluate the reply. Respond with a single JSON object with fields: "+
				`"is_answer" (bool, whether the reply answers the question; if false, repeat the question in "next_question"), `+
				`"feedback" (feedback on the reply, in %s), `+
				`"is_correct" (bool), `+
				`"answer_analysis" (analysis of the reply), `+
				`"answer_score" (integer 0-5), `+
				`"is_interview_over" (bool, true when the knowledge points are sufficiently covered), `+
				`"next_question" (the next question object as before, or null when the interview is over).`,
			question.Question, question.Answer, answer, session.Config.Language),
	})

	content, err := i.client.Complete(ctx, messages, true)
	if err != nil {
		return nil, err
	}
	var evaluation models.AnswerEvaluation
	if err := decodeJSON(content, &evaluation); err != nil {
		return nil, errs.Collaboratorf("malformed evaluation payload: %v", err)
	}
	if evaluation.AnswerScore < 0 {
		evaluation.AnswerScore = 0
	}
	if evaluation.AnswerScore > 5 {
		evaluation.AnswerScore = 5
	}
	return &evaluation, nil
}

func (i *Interviewer) Summarize(ctx context.Context, session *models.Session) (string, error) {
	var history strings.Builder
	for _, record := range session.QAHistory {
		fmt.Fprintf(&history, "Q%d: %s\nAnswer: %s\nFeedback: %s\n\n",
			record.Question.SequenceNumber, record.Question.Question, record.Answer, record.Feedback)
	}

	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt(session)},
		{Role: "user", Content: fmt.Sprintf(
			"The interview is over. Write a concise summary of the candidate's performance in %s, "+
				"covering strengths and weaknesses per knowledge point. Interview record:\n\n%s",
			session.Config.Language, history.String())},
	}

	summary, err := i.client.Complete(ctx, messages, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

func systemPrompt(session *models.Session) string {
	return fmt.Sprintf(
		"You are a technical interviewer for the position of %s. "+
			"Probe the candidate on these knowledge points: %s. "+
			"Difficulty: %s. Conduct the interview in %s. "+
			"Ask one question at a time.",
		session.Config.JobTitle, session.Config.KnowledgePoints,
		session.Config.Difficulty, session.Config.Language)
}

// contextMessages rebuilds the chat context from the session ledger behind
// the system prompt.
func contextMessages(session *models.Session) []ChatMessage {
	messages := make([]ChatMessage, 0, len(session.Messages)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt(session)})
	for _, msg := range session.Messages {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// decodeJSON tolerates models that wrap their JSON in a code fence.
func decodeJSON(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return json.Unmarshal([]byte(trimmed), v)
}
