package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"interview-service/internal/errs"
	"interview-service/internal/models"
)

// TestRecords is the store behind the activation records.
type TestRecords interface {
	Create(ctx context.Context, test *models.Test) error
	FindByTestID(ctx context.Context, testID string) (*models.Test, error)
	FindByActivateCode(ctx context.Context, code string) (*models.Test, error)
	UpdateStatus(ctx context.Context, testID string, status models.TestStatus) error
}

// TestService manages interview activation records: a recruiter schedules
// a test, the candidate redeems the 8-digit activation code and receives
// the session configuration.
type TestService struct {
	Repo TestRecords
}

func NewTestService(repo TestRecords) *TestService {
	return &TestService{Repo: repo}
}

type CreateTestParams struct {
	UserID       string
	UserName     string
	JobID        string
	JobTitle     string
	Language     models.Language
	Difficulty   models.Difficulty
	TestTime     int
	ExaminePoint string
}

func (p *CreateTestParams) validate() error {
	if p.UserID == "" {
		return errs.Validationf("user_id is required")
	}
	if p.ExaminePoint == "" {
		return errs.Validationf("examine_point is required")
	}
	if p.TestTime < models.MinDurationMinutes || p.TestTime > models.MaxDurationMinutes {
		return errs.Validationf("test_time must be in [%d,%d], got %d",
			models.MinDurationMinutes, models.MaxDurationMinutes, p.TestTime)
	}
	if !p.Language.Valid() {
		return errs.Validationf("unknown language %q", p.Language)
	}
	if !p.Difficulty.Valid() {
		return errs.Validationf("unknown difficulty %q", p.Difficulty)
	}
	return nil
}

func (s *TestService) CreateTest(ctx context.Context, params CreateTestParams) (*models.Test, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	test := &models.Test{
		TestID:       uuid.NewString(),
		UserID:       params.UserID,
		UserName:     params.UserName,
		JobID:        params.JobID,
		JobTitle:     params.JobTitle,
		Language:     params.Language,
		Difficulty:   params.Difficulty,
		TestTime:     params.TestTime,
		ExaminePoint: params.ExaminePoint,
		Status:       models.TestStatusOpen,
		CreateDate:   now,
		StartDate:    now,
		CloseDate:    now.Add(7 * 24 * time.Hour),
	}

	// Retry on the rare activation-code collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateActivateCode()
		if err != nil {
			return nil, err
		}
		test.ActivateCode = code
		err = s.Repo.Create(ctx, test)
		if err == nil {
			return test, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate a unique activation code")
}

// Activate redeems an activation code. The test moves to started and the
// returned configuration seeds the interview session, keyed by test id so
// repeated activations resume the same session.
func (s *TestService) Activate(ctx context.Context, code string) (*models.SessionConfig, error) {
	test, err := s.Repo.FindByActivateCode(ctx, code)
	if err != nil {
		return nil, err
	}
	switch test.Status {
	case models.TestStatusCompleted:
		return nil, errs.Conflictf("test %s is already completed", test.TestID)
	case models.TestStatusExpired:
		return nil, errs.Conflictf("test %s has expired", test.TestID)
	}
	if time.Now().After(test.CloseDate) {
		_ = s.Repo.UpdateStatus(ctx, test.TestID, models.TestStatusExpired)
		return nil, errs.Conflictf("test %s has expired", test.TestID)
	}

	if test.Status == models.TestStatusOpen {
		if err := s.Repo.UpdateStatus(ctx, test.TestID, models.TestStatusStarted); err != nil {
			return nil, err
		}
	}

	return &models.SessionConfig{
		SessionID:       test.TestID,
		UserID:          test.UserID,
		JobTitle:        test.JobTitle,
		KnowledgePoints: test.ExaminePoint,
		DurationMinutes: test.TestTime,
		Language:        test.Language,
		Difficulty:      test.Difficulty,
	}, nil
}

func (s *TestService) MarkCompleted(ctx context.Context, testID string) error {
	return s.Repo.UpdateStatus(ctx, testID, models.TestStatusCompleted)
}

func generateActivateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", n.Int64()), nil
}
