package service

import (
	"context"
	"testing"

	"interview-service/internal/errs"
	"interview-service/internal/models"
	"interview-service/internal/repository"
)

type fakeResultStore struct {
	records []*repository.ResultRecord
}

func (s *fakeResultStore) Upsert(_ context.Context, record *repository.ResultRecord) error {
	s.records = append(s.records, record)
	return nil
}

type fakeTestStore struct {
	tests   map[string]*models.Test
	updated map[string]models.TestStatus
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{
		tests:   make(map[string]*models.Test),
		updated: make(map[string]models.TestStatus),
	}
}

func (s *fakeTestStore) FindByTestID(_ context.Context, testID string) (*models.Test, error) {
	test, ok := s.tests[testID]
	if !ok {
		return nil, errs.NotFoundf("test %s", testID)
	}
	return test, nil
}

func (s *fakeTestStore) UpdateStatus(_ context.Context, testID string, status models.TestStatus) error {
	s.updated[testID] = status
	return nil
}

type fakePublisher struct {
	sessionIDs []string
}

func (p *fakePublisher) Complete(_ context.Context, sessionID string, _ *models.InterviewResult) error {
	p.sessionIDs = append(p.sessionIDs, sessionID)
	return nil
}

func terminalSession(sessionID, userID string) *models.Session {
	return &models.Session{
		Config: models.SessionConfig{
			SessionID:       sessionID,
			UserID:          userID,
			JobTitle:        "Backend Engineer",
			KnowledgePoints: "basic sorting algorithms",
			DurationMinutes: 3,
			Language:        models.LanguageEnglish,
			Difficulty:      models.DifficultyEasy,
		},
		State: models.StateTerminated,
	}
}

func TestSinkAttributesDirectSessionToOwner(t *testing.T) {
	results := &fakeResultStore{}
	tests := newFakeTestStore() // no activation record exists
	sink := NewResultSink(results, tests, nil)

	session := terminalSession("direct-1", "user-42")
	result := &models.InterviewResult{Summary: "fine", Score: 80, TotalQuestionNumber: 2}

	if err := sink.Complete(context.Background(), session, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(results.records))
	}
	record := results.records[0]
	if record.UserID != "user-42" {
		t.Errorf("expected record attributed to user-42, got %q", record.UserID)
	}
	if record.JobTitle != "Backend Engineer" {
		t.Errorf("expected job title carried over, got %q", record.JobTitle)
	}
	if len(tests.updated) != 0 {
		t.Errorf("no activation record should have been touched, got %v", tests.updated)
	}
}

func TestSinkClosesActivationRecord(t *testing.T) {
	results := &fakeResultStore{}
	tests := newFakeTestStore()
	tests.tests["test-1"] = &models.Test{TestID: "test-1", UserID: "user-42"}
	publisher := &fakePublisher{}
	sink := NewResultSink(results, tests, publisher)

	session := terminalSession("test-1", "user-42")
	if err := sink.Complete(context.Background(), session, &models.InterviewResult{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tests.updated["test-1"] != models.TestStatusCompleted {
		t.Errorf("expected test-1 marked completed, got %v", tests.updated)
	}
	if len(publisher.sessionIDs) != 1 || publisher.sessionIDs[0] != "test-1" {
		t.Errorf("expected one completed event for test-1, got %v", publisher.sessionIDs)
	}
}
