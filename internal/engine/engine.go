// Package engine drives the resumable interview session state machine.
//
// A session moves through START -> GENERATING_QUESTION -> AWAITING_ANSWER
// -> ANALYZING_ANSWER and loops back to GENERATING_QUESTION until a
// termination criterion fires, then settles in TERMINATED. AWAITING_ANSWER
// is the only suspension point: the session sits in the checkpoint store
// with no goroutine blocked on it, possibly across process restarts.
// Resumption dispatches on the persisted state tag, never on a suspended
// call stack.
package engine

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"interview-service/internal/errs"
	"interview-service/internal/ledger"
	"interview-service/internal/models"
)

// QuestionGenerator produces the next question from the session context.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, session *models.Session) (*models.Question, error)
}

// AnswerEvaluator judges a submitted answer against the pending question
// and may propose the next question or signal the end of the interview.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, session *models.Session, question *models.Question, answer string) (*models.AnswerEvaluation, error)
}

// Summarizer writes the closing summary over the full interview history.
type Summarizer interface {
	Summarize(ctx context.Context, session *models.Session) (string, error)
}

// ResultSink receives the terminal result exactly once per session, after
// the terminal checkpoint has been committed. The session carries the
// configuration (owner, job title) the sink needs for attribution.
type ResultSink interface {
	Complete(ctx context.Context, session *models.Session, result *models.InterviewResult) error
}

// CheckpointStore persists one checkpoint per session id. Insert fails
// with errs.ErrConflict when the id already exists; Update is a
// compare-and-swap on the version and fails with errs.ErrConflict when the
// expected version has been overtaken. Both must be atomic: no reader may
// observe a half-written checkpoint.
type CheckpointStore interface {
	Insert(ctx context.Context, cp *models.Checkpoint) error
	Get(ctx context.Context, sessionID string) (*models.Checkpoint, error)
	Update(ctx context.Context, cp *models.Checkpoint, expectedVersion int64) error
}

// CreateResult is the caller-visible outcome of Create.
type CreateResult struct {
	Question *models.Question        `json:"question,omitempty"`
	State    models.SessionState     `json:"state"`
	Result   *models.InterviewResult `json:"result,omitempty"`
}

// ResumeResult is the caller-visible outcome of Resume.
type ResumeResult struct {
	Feedback     string                  `json:"feedback"`
	NextQuestion *models.Question        `json:"next_question,omitempty"`
	IsOver       bool                    `json:"is_over"`
	QAHistory    []models.QARecord       `json:"qa_history"`
	Result       *models.InterviewResult `json:"result,omitempty"`
}

type Engine struct {
	store      CheckpointStore
	generator  QuestionGenerator
	evaluator  AnswerEvaluator
	summarizer Summarizer
	sink       ResultSink

	// injectable clock, time.Now in production
	now func() time.Time

	// resumption lookup table keyed by the persisted state tag
	resumeByState map[models.SessionState]resumeFunc
}

type resumeFunc func(ctx context.Context, cp *models.Checkpoint, answer string) (*ResumeResult, error)

func NewEngine(store CheckpointStore, generator QuestionGenerator, evaluator AnswerEvaluator, summarizer Summarizer, sink ResultSink) *Engine {
	e := &Engine{
		store:      store,
		generator:  generator,
		evaluator:  evaluator,
		summarizer: summarizer,
		sink:       sink,
		now:        time.Now,
	}
	e.resumeByState = map[models.SessionState]resumeFunc{
		models.StateAwaitingAnswer: e.resumeAwaitingAnswer,
		models.StateTerminated:     e.resumeTerminated,
	}
	return e
}

// Create validates the configuration, generates the first question and
// commits the session in AWAITING_ANSWER. If a checkpoint for the id
// already exists the call is a read: it returns the view appropriate to
// the committed state without invoking the generator again.
func (e *Engine) Create(ctx context.Context, config models.SessionConfig) (*CreateResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if cp, err := e.store.Get(ctx, config.SessionID); err == nil {
		return createViewOf(cp)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	session := newSession(config, e.now())
	question, err := e.generator.GenerateQuestion(ctx, session)
	if err != nil {
		return nil, err
	}
	e.poseQuestion(session, question)

	cp := &models.Checkpoint{
		SessionID: config.SessionID,
		State:     session.State,
		Payload:   *session,
		Version:   1,
		UpdatedAt: e.now(),
	}
	if err := e.store.Insert(ctx, cp); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			// Lost a create/create race; the winner's checkpoint is
			// authoritative, return its view.
			existing, getErr := e.store.Get(ctx, config.SessionID)
			if getErr != nil {
				return nil, getErr
			}
			return createViewOf(existing)
		}
		return nil, err
	}

	return &CreateResult{Question: session.PendingQuestion, State: session.State}, nil
}

// Resume feeds the candidate's answer into a session suspended in
// AWAITING_ANSWER. On a TERMINATED session it is a no-op returning the
// stored result; any other state is a conflict.
func (e *Engine) Resume(ctx context.Context, sessionID, answerText string) (*ResumeResult, error) {
	cp, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	handle, ok := e.resumeByState[cp.State]
	if !ok {
		return nil, errs.Conflictf("session %s is in state %s, not awaiting an answer", sessionID, cp.State)
	}
	return handle(ctx, cp, answerText)
}

func (e *Engine) resumeTerminated(_ context.Context, cp *models.Checkpoint, _ string) (*ResumeResult, error) {
	result := cp.Payload.Result
	return &ResumeResult{
		Feedback:  result.Summary,
		IsOver:    true,
		QAHistory: result.QAHistory,
		Result:    result,
	}, nil
}

// resumeAwaitingAnswer runs the ANALYZING_ANSWER step and either poses the
// next question or finalizes the session. All work happens on an in-memory
// copy; the only visible effect is a single compare-and-swap commit, so a
// collaborator failure leaves the committed checkpoint untouched and the
// caller can retry with the same answer.
func (e *Engine) resumeAwaitingAnswer(ctx context.Context, cp *models.Checkpoint, answerText string) (*ResumeResult, error) {
	session := cp.Payload
	question := session.PendingQuestion
	session.State = models.StateAnalyzingAnswer
	session.LastAnswer = answerText

	evaluation, err := e.evaluator.EvaluateAnswer(ctx, &session, question, answerText)
	if err != nil {
		return nil, err
	}

	// Every completed evaluation is folded into the history, including
	// is_answer=false turns. The evaluator repeats the question in
	// next_question when the reply did not answer it.
	session.QAHistory = append(session.QAHistory, models.QARecord{
		Question:  *question,
		Answer:    answerText,
		Feedback:  evaluation.Feedback,
		IsCorrect: evaluation.IsAnswer && evaluation.IsCorrect,
		Score:     evaluation.AnswerScore,
	})
	session.Messages = ledger.Merge(session.Messages, []models.Message{
		{ID: uuid.NewString(), Role: models.RoleUser, Content: answerText},
		{ID: uuid.NewString(), Role: models.RoleAssistant, Content: evaluation.Feedback},
	})

	over := evaluation.IsInterviewOver || !e.now().Before(session.Deadline())
	if over {
		result, err := e.finalize(ctx, &session)
		if err != nil {
			return nil, err
		}
		if err := e.commit(ctx, cp, &session); err != nil {
			return nil, err
		}
		e.emitCompleted(ctx, &session, result)
		return &ResumeResult{
			Feedback:  evaluation.Feedback,
			IsOver:    true,
			QAHistory: session.QAHistory,
			Result:    result,
		}, nil
	}

	next := evaluation.NextQuestion
	if next == nil {
		next, err = e.generator.GenerateQuestion(ctx, &session)
		if err != nil {
			return nil, err
		}
	}
	e.poseQuestion(&session, next)

	if err := e.commit(ctx, cp, &session); err != nil {
		return nil, err
	}
	return &ResumeResult{
		Feedback:     evaluation.Feedback,
		NextQuestion: session.PendingQuestion,
		QAHistory:    session.QAHistory,
	}, nil
}

// Expire forces a session past its deadline from AWAITING_ANSWER to
// TERMINATED with a partial result. It is the entry point for the TTL
// sweep and is not part of the caller-facing contract.
func (e *Engine) Expire(ctx context.Context, sessionID string) (*models.InterviewResult, error) {
	cp, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cp.State != models.StateAwaitingAnswer {
		return nil, errs.Conflictf("session %s is in state %s, nothing to expire", sessionID, cp.State)
	}
	session := cp.Payload
	if e.now().Before(session.Deadline()) {
		return nil, errs.Conflictf("session %s has not reached its deadline", sessionID)
	}

	result, err := e.finalize(ctx, &session)
	if err != nil {
		return nil, err
	}
	if err := e.commit(ctx, cp, &session); err != nil {
		return nil, err
	}
	e.emitCompleted(ctx, &session, result)
	return result, nil
}

// poseQuestion stamps the engine-owned sequence number and suspends the
// session in AWAITING_ANSWER. Whatever numbering the collaborator
// proposed, the committed question carries NextSequence so numbers stay
// gapless and strictly increasing.
func (e *Engine) poseQuestion(session *models.Session, question *models.Question) {
	q := *question
	q.SequenceNumber = session.NextSequence()
	session.PendingQuestion = &q
	session.State = models.StateAwaitingAnswer
	session.Messages = ledger.Merge(session.Messages, []models.Message{
		{ID: uuid.NewString(), Role: models.RoleAssistant, Content: q.Question},
	})
}

// finalize aggregates the history into the terminal result. The summary is
// produced synchronously before the terminal state can be committed.
func (e *Engine) finalize(ctx context.Context, session *models.Session) (*models.InterviewResult, error) {
	summary, err := e.summarizer.Summarize(ctx, session)
	if err != nil {
		return nil, err
	}
	result := buildResult(session, summary, e.now())
	session.State = models.StateTerminated
	session.PendingQuestion = nil
	session.Result = result
	return result, nil
}

// commit writes the whole new state in one conditional update. A lost race
// surfaces as errs.ErrConflict and nothing is changed.
func (e *Engine) commit(ctx context.Context, cp *models.Checkpoint, session *models.Session) error {
	next := &models.Checkpoint{
		SessionID: cp.SessionID,
		State:     session.State,
		Payload:   *session,
		Version:   cp.Version + 1,
		UpdatedAt: e.now(),
	}
	return e.store.Update(ctx, next, cp.Version)
}

// emitCompleted notifies the sink after a successful terminal commit. The
// result is durable at this point, so a sink failure is logged and not
// surfaced; the stored checkpoint remains the source of truth.
func (e *Engine) emitCompleted(ctx context.Context, session *models.Session, result *models.InterviewResult) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Complete(ctx, session, result); err != nil {
		log.Printf("failed to emit completed event for session %s: %v", session.Config.SessionID, err)
	}
}

func newSession(config models.SessionConfig, start time.Time) *models.Session {
	return &models.Session{
		Config:    config,
		State:     models.StateGeneratingQuestion,
		StartTime: start,
		Messages:  []models.Message{},
		QAHistory: []models.QARecord{},
	}
}

func createViewOf(cp *models.Checkpoint) (*CreateResult, error) {
	switch cp.State {
	case models.StateAwaitingAnswer:
		return &CreateResult{Question: cp.Payload.PendingQuestion, State: cp.State}, nil
	case models.StateTerminated:
		return &CreateResult{State: cp.State, Result: cp.Payload.Result}, nil
	default:
		return nil, errs.Conflictf("session %s has an in-flight transition in state %s", cp.SessionID, cp.State)
	}
}
