package models

import (
	"errors"
	"testing"
	"time"

	"interview-service/internal/errs"
)

func validConfig() SessionConfig {
	return SessionConfig{
		SessionID:       "s1",
		UserID:          "u1",
		JobTitle:        "Backend Engineer",
		KnowledgePoints: "basic sorting algorithms",
		DurationMinutes: 3,
		Language:        LanguageEnglish,
		Difficulty:      DifficultyEasy,
	}
}

func TestSessionConfigValidate(t *testing.T) {
	config := validConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SessionConfig)
	}{
		{"empty session id", func(c *SessionConfig) { c.SessionID = "" }},
		{"empty user id", func(c *SessionConfig) { c.UserID = "" }},
		{"empty knowledge points", func(c *SessionConfig) { c.KnowledgePoints = "" }},
		{"duration below range", func(c *SessionConfig) { c.DurationMinutes = 0 }},
		{"duration above range", func(c *SessionConfig) { c.DurationMinutes = 121 }},
		{"free-form language", func(c *SessionConfig) { c.Language = "english" }},
		{"free-form difficulty", func(c *SessionConfig) { c.Difficulty = "easy" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := validConfig()
			tc.mutate(&config)
			if err := config.Validate(); !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDurationBoundsAccepted(t *testing.T) {
	for _, minutes := range []int{MinDurationMinutes, MaxDurationMinutes} {
		config := validConfig()
		config.DurationMinutes = minutes
		if err := config.Validate(); err != nil {
			t.Errorf("duration %d should be valid: %v", minutes, err)
		}
	}
}

func TestSessionDeadline(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &Session{
		Config:    SessionConfig{DurationMinutes: 3},
		StartTime: start,
	}
	want := start.Add(3 * time.Minute)
	if got := session.Deadline(); !got.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, got)
	}
}

func TestNextSequenceFollowsHistory(t *testing.T) {
	session := &Session{}
	if session.NextSequence() != 1 {
		t.Errorf("fresh session must ask question 1, got %d", session.NextSequence())
	}
	session.QAHistory = append(session.QAHistory, QARecord{}, QARecord{})
	if session.NextSequence() != 3 {
		t.Errorf("expected sequence 3 after 2 answers, got %d", session.NextSequence())
	}
}

func TestEnumValidation(t *testing.T) {
	if Language("French").Valid() {
		t.Error("French is not a supported language")
	}
	if !QuestionType("True False").Valid() {
		t.Error("True False is a supported question type")
	}
	if QuestionType("Riddle").Valid() {
		t.Error("Riddle is not a supported question type")
	}
}
