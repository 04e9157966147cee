package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"interview-service/internal/models"
	"interview-service/internal/repository"
)

// Publisher is the slice of the event publisher the sink needs.
type Publisher interface {
	Complete(ctx context.Context, sessionID string, result *models.InterviewResult) error
}

type resultStore interface {
	Upsert(ctx context.Context, record *repository.ResultRecord) error
}

type testStore interface {
	FindByTestID(ctx context.Context, testID string) (*models.Test, error)
	UpdateStatus(ctx context.Context, testID string, status models.TestStatus) error
}

// ResultSink receives each terminal result once, after the terminal
// checkpoint commit: it stores the queryable result record attributed to
// the session's owner, closes the activation record when one exists, and
// forwards the completed event downstream.
type ResultSink struct {
	Results   resultStore
	Tests     testStore
	Publisher Publisher
}

func NewResultSink(results resultStore, tests testStore, publisher Publisher) *ResultSink {
	return &ResultSink{Results: results, Tests: tests, Publisher: publisher}
}

func (s *ResultSink) Complete(ctx context.Context, session *models.Session, result *models.InterviewResult) error {
	sessionID := session.Config.SessionID
	record := &repository.ResultRecord{
		SessionID: sessionID,
		UserID:    session.Config.UserID,
		JobTitle:  session.Config.JobTitle,
		Result:    *result,
		CreatedAt: time.Now(),
	}
	// Sessions created through the activation flow are keyed by test id;
	// close the activation record alongside. Direct sessions have none.
	if _, err := s.Tests.FindByTestID(ctx, sessionID); err == nil {
		if err := s.Tests.UpdateStatus(ctx, sessionID, models.TestStatusCompleted); err != nil {
			log.Printf("failed to close test %s: %v", sessionID, err)
		}
	}
	if err := s.Results.Upsert(ctx, record); err != nil {
		return fmt.Errorf("store result for session %s: %w", sessionID, err)
	}

	if s.Publisher != nil {
		if err := s.Publisher.Complete(ctx, sessionID, result); err != nil {
			log.Printf("failed to publish completed event for session %s: %v", sessionID, err)
		}
	}
	return nil
}
