package event

import (
	"context"
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"interview-service/internal/models"
)

// Routing keys published on the topic exchange.
const (
	SessionCreated  = "interview.session.created"
	AnswerSubmitted = "interview.answer.submitted"
	SessionExpired  = "interview.session.expired"
	Completed       = "interview.completed"
)

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s", eventType)

	return p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Complete implements the engine's ResultSink: one terminal event per
// session, published after the terminal checkpoint is committed.
func (p *EventPublisher) Complete(_ context.Context, sessionID string, result *models.InterviewResult) error {
	return p.Publish(Completed, map[string]interface{}{
		"session_id": sessionID,
		"result":     result,
	})
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
