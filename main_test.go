package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

func TestPublishTapOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.JSON(http.StatusOK, gin.H{"ok": true})

	publisher := &recordingPublisher{}
	publishTap(c, publisher, "interview.session.created", gin.H{"user_id": "u1"})

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 event for a successful response, got %d", len(publisher.events))
	}
}

func TestPublishTapSkipsFailedHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		status int
	}{
		{"validation failure", http.StatusBadRequest},
		{"not found", http.StatusNotFound},
		{"conflict", http.StatusConflict},
		{"collaborator failure", http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.JSON(tc.status, gin.H{"error": "nope"})

			publisher := &recordingPublisher{}
			publishTap(c, publisher, "interview.answer.submitted", gin.H{})

			if len(publisher.events) != 0 {
				t.Errorf("no event may fire for HTTP %d, got %v", tc.status, publisher.events)
			}
		})
	}
}
