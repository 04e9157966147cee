package service

import (
	"context"
	"errors"
	"testing"

	"interview-service/internal/errs"
	"interview-service/internal/models"
)

// fakeTestRecords rejects the first n creates with a conflict, as a
// unique-index collision on the activation code would.
type fakeTestRecords struct {
	conflicts int
	creates   int
	codes     []string
	stored    *models.Test
}

func (r *fakeTestRecords) Create(_ context.Context, test *models.Test) error {
	r.creates++
	r.codes = append(r.codes, test.ActivateCode)
	if r.creates <= r.conflicts {
		return errs.Conflictf("activate_code %s already exists", test.ActivateCode)
	}
	copied := *test
	r.stored = &copied
	return nil
}

func (r *fakeTestRecords) FindByTestID(_ context.Context, testID string) (*models.Test, error) {
	if r.stored == nil || r.stored.TestID != testID {
		return nil, errs.NotFoundf("test %s", testID)
	}
	return r.stored, nil
}

func (r *fakeTestRecords) FindByActivateCode(_ context.Context, code string) (*models.Test, error) {
	if r.stored == nil || r.stored.ActivateCode != code {
		return nil, errs.NotFoundf("activation code %s", code)
	}
	return r.stored, nil
}

func (r *fakeTestRecords) UpdateStatus(_ context.Context, testID string, status models.TestStatus) error {
	if r.stored == nil || r.stored.TestID != testID {
		return errs.NotFoundf("test %s", testID)
	}
	r.stored.Status = status
	return nil
}

func validParams() CreateTestParams {
	return CreateTestParams{
		UserID:       "u1",
		UserName:     "Ada",
		JobTitle:     "Backend Engineer",
		Language:     models.LanguageEnglish,
		Difficulty:   models.DifficultyMedium,
		TestTime:     30,
		ExaminePoint: "concurrency primitives",
	}
}

func TestGenerateActivateCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateActivateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("expected an 8 digit code, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes do not look random")
	}
}

func TestCreateTestRetriesCodeCollision(t *testing.T) {
	repo := &fakeTestRecords{conflicts: 2}
	svc := NewTestService(repo)

	test, err := svc.CreateTest(context.Background(), validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.creates != 3 {
		t.Errorf("expected 3 create attempts around 2 collisions, got %d", repo.creates)
	}
	if len(test.ActivateCode) != 8 {
		t.Errorf("expected an 8 digit code, got %q", test.ActivateCode)
	}
	if repo.stored == nil || repo.stored.ActivateCode != test.ActivateCode {
		t.Errorf("stored record does not match returned test: %+v", repo.stored)
	}
}

func TestCreateTestGivesUpAfterExhaustedRetries(t *testing.T) {
	repo := &fakeTestRecords{conflicts: 5}
	svc := NewTestService(repo)

	if _, err := svc.CreateTest(context.Background(), validParams()); err == nil {
		t.Fatal("expected an error once every code attempt collides")
	}
	if repo.creates != 5 {
		t.Errorf("expected 5 create attempts, got %d", repo.creates)
	}
}

func TestActivateReturnsSessionConfig(t *testing.T) {
	repo := &fakeTestRecords{}
	svc := NewTestService(repo)

	test, err := svc.CreateTest(context.Background(), validParams())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	config, err := svc.Activate(context.Background(), test.ActivateCode)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if config.SessionID != test.TestID {
		t.Errorf("session must be keyed by test id, got %q", config.SessionID)
	}
	if config.UserID != "u1" || config.DurationMinutes != 30 {
		t.Errorf("configuration not carried over: %+v", config)
	}
	if repo.stored.Status != models.TestStatusStarted {
		t.Errorf("expected test started after activation, got %s", repo.stored.Status)
	}
}

func TestCreateTestParamsValidation(t *testing.T) {
	valid := validParams()
	if err := valid.validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateTestParams)
	}{
		{"missing user", func(p *CreateTestParams) { p.UserID = "" }},
		{"missing examine point", func(p *CreateTestParams) { p.ExaminePoint = "" }},
		{"time below range", func(p *CreateTestParams) { p.TestTime = 0 }},
		{"time above range", func(p *CreateTestParams) { p.TestTime = 180 }},
		{"bad language", func(p *CreateTestParams) { p.Language = "Esperanto" }},
		{"bad difficulty", func(p *CreateTestParams) { p.Difficulty = "Brutal" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			if err := params.validate(); !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
