package models

import (
	"time"

	"interview-service/internal/errs"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 120
)

// SessionConfig is the validated configuration a session is created with.
type SessionConfig struct {
	SessionID       string     `bson:"session_id" json:"session_id"`
	UserID          string     `bson:"user_id" json:"user_id"`
	JobTitle        string     `bson:"job_title" json:"job_title"`
	KnowledgePoints string     `bson:"knowledge_points" json:"knowledge_points"`
	DurationMinutes int        `bson:"duration_minutes" json:"duration_minutes"`
	Language        Language   `bson:"language" json:"language"`
	Difficulty      Difficulty `bson:"difficulty" json:"difficulty"`
}

func (c *SessionConfig) Validate() error {
	if c.SessionID == "" {
		return errs.Validationf("session_id is required")
	}
	if c.UserID == "" {
		return errs.Validationf("user_id is required")
	}
	if c.KnowledgePoints == "" {
		return errs.Validationf("knowledge_points is required")
	}
	if c.DurationMinutes < MinDurationMinutes || c.DurationMinutes > MaxDurationMinutes {
		return errs.Validationf("duration_minutes must be in [%d,%d], got %d",
			MinDurationMinutes, MaxDurationMinutes, c.DurationMinutes)
	}
	if !c.Language.Valid() {
		return errs.Validationf("unknown language %q", c.Language)
	}
	if !c.Difficulty.Valid() {
		return errs.Validationf("unknown difficulty %q", c.Difficulty)
	}
	return nil
}

// Session is the whole per-session mutable state. It is owned by the
// engine, mutated only through machine transitions, and serialized as the
// checkpoint payload.
type Session struct {
	Config    SessionConfig `bson:"config" json:"config"`
	State     SessionState  `bson:"state" json:"state"`
	StartTime time.Time     `bson:"start_time" json:"start_time"`

	// Conversation context for the language model.
	Messages []Message `bson:"messages" json:"messages"`

	// Pending question while AWAITING_ANSWER; nil otherwise.
	PendingQuestion *Question `bson:"pending_question,omitempty" json:"pending_question,omitempty"`

	// Last submitted answer, kept for the ANALYZING_ANSWER step.
	LastAnswer string `bson:"last_answer,omitempty" json:"last_answer,omitempty"`

	// Canonical interview record, append-only.
	QAHistory []QARecord `bson:"qa_history" json:"qa_history"`

	// Set if and only if State == TERMINATED.
	Result *InterviewResult `bson:"result,omitempty" json:"result,omitempty"`
}

// Deadline is the wall-clock instant after which the duration criterion
// terminates the session.
func (s *Session) Deadline() time.Time {
	return s.StartTime.Add(time.Duration(s.Config.DurationMinutes) * time.Minute)
}

// NextSequence returns the sequence number the next question must carry.
func (s *Session) NextSequence() int {
	return len(s.QAHistory) + 1
}

// Checkpoint is the durable snapshot of one session. Writes are
// conditioned on Version (optimistic concurrency); reads return the latest
// committed version.
type Checkpoint struct {
	SessionID string       `bson:"_id" json:"session_id"`
	State     SessionState `bson:"state" json:"state"`
	Payload   Session      `bson:"payload" json:"payload"`
	Version   int64        `bson:"version" json:"version"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}
