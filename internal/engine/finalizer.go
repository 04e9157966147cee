package engine

import (
	"math"
	"time"

	"interview-service/internal/models"
)

// Per-answer scores are on a 0-5 scale; the result score is the mean
// scaled to 0-100 and rounded. An empty history scores 0.
const maxAnswerScore = 5

func aggregateScore(history []models.QARecord) int {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, record := range history {
		sum += record.Score
	}
	return int(math.Round(float64(sum) * 100 / float64(maxAnswerScore*len(history))))
}

func countCorrect(history []models.QARecord) int {
	correct := 0
	for _, record := range history {
		if record.IsCorrect {
			correct++
		}
	}
	return correct
}

func buildResult(session *models.Session, summary string, now time.Time) *models.InterviewResult {
	history := make([]models.QARecord, len(session.QAHistory))
	copy(history, session.QAHistory)

	return &models.InterviewResult{
		Summary:             summary,
		Score:               aggregateScore(history),
		TotalQuestionNumber: len(history),
		CorrectNumber:       countCorrect(history),
		ElapsedSeconds:      int64(now.Sub(session.StartTime) / time.Second),
		QAHistory:           history,
	}
}
