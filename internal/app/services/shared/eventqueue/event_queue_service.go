package eventqueue

import (
	"context"
	"fmt"
	"sync"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service publishes decoded-transaction events to RabbitMQ. Both queues are
// durable and publishes are confirmed, so an accepted event survives a broker
// restart.
type Service struct {
	channel   *amqp.Channel
	log       *zap.Logger
	queue     string
	deadQueue string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName, deadLetterQueueName string) (contracts.EventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if _, err = channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, err
	}
	if _, err = channel.QueueDeclare(deadLetterQueueName, true, false, false, false, nil); err != nil {
		return nil, err
	}

	if err := channel.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		channel:   channel,
		log:       log,
		queue:     queueName,
		deadQueue: deadLetterQueueName,
		confirms:  channel.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (s *Service) Publish(ctx context.Context, event models.TransactionEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("EventQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("queue", s.queue),
		zap.String("transaction_set", event.TransactionSet),
	)
	return s.publish(ctx, s.queue, event)
}

func (s *Service) PublishToDeadLetter(ctx context.Context, event models.TransactionEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("EventQueue.PublishToDeadLetter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("queue", s.deadQueue),
		zap.String("transaction_set", event.TransactionSet),
		zap.Int("failed_count", event.FailedCount),
	)
	return s.publish(ctx, s.deadQueue, event)
}

// publish sends the event with persistence and waits for the broker confirm.
func (s *Service) publish(ctx context.Context, queue string, event models.TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.channel.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}
