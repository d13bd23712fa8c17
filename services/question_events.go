package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"virtualta/models"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QuestionPublisher buffers question events and publishes them to a RabbitMQ
// queue from a single background goroutine. Publish never blocks; events that
// do not fit in the buffer are dropped.
type QuestionPublisher struct {
	ch      Channel
	queue   string
	events  chan models.QuestionEvent
	logger  *zap.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewQuestionPublisher(ch Channel, queue string, buffer int, logger *zap.Logger) *QuestionPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionPublisher{
		ch:      ch,
		queue:   queue,
		events:  make(chan models.QuestionEvent, buffer),
		logger:  logger,
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}
}

func (p *QuestionPublisher) Publish(ev models.QuestionEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("question event buffer full, dropping event", zap.String("id", ev.ID))
	}
}

// Run publishes buffered events until Close is called, then drains what is
// left. It returns once the buffer is empty.
func (p *QuestionPublisher) Run() {
	defer close(p.done)
	for ev := range p.events {
		p.send(ev)
	}
}

// Close stops accepting events and waits for Run to drain the buffer or for
// ctx to expire.
func (p *QuestionPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *QuestionPublisher) send(ev models.QuestionEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("encode question event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.AskedAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Warn("publish question event", zap.String("id", ev.ID), zap.Error(err))
	}
}
