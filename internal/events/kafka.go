// AngelaMos | 2026
// kafka.go

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/metrics"
)

var jsonMarshal = json.Marshal

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues events on a bounded channel and writes them from a
// single goroutine. When the queue is full new events are dropped.
type KafkaPublisher struct {
	writer       KafkaWriter
	brokers      []string
	events       chan Event
	closeChan    chan struct{}
	done         chan struct{}
	closeOnce    sync.Once
	writeTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewKafkaPublisher(
	cfg config.KafkaConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return newKafkaPublisher(writer, cfg, logger, m)
}

func newKafkaPublisher(
	writer KafkaWriter,
	cfg config.KafkaConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) *KafkaPublisher {
	size := cfg.BufferSize
	if size < 1 {
		size = 256
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	p := &KafkaPublisher{
		writer:       writer,
		brokers:      cfg.Brokers,
		events:       make(chan Event, size),
		closeChan:    make(chan struct{}),
		done:         make(chan struct{}),
		writeTimeout: timeout,
		logger:       logger.With("component", "kafka_publisher"),
		metrics:      m,
	}

	go p.eventLoop()
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	select {
	case <-p.closeChan:
		p.metrics.EventPublished("dropped")
		p.logger.WarnContext(ctx, "publisher closed, dropping event",
			"event_type", event.Type,
			"key", event.Key,
		)
		return
	default:
	}

	select {
	case p.events <- event:
		p.metrics.EventPublished("queued")
	default:
		p.metrics.EventPublished("dropped")
		p.logger.WarnContext(ctx, "event queue full, dropping event",
			"event_type", event.Type,
			"key", event.Key,
		)
	}
}

func (p *KafkaPublisher) eventLoop() {
	defer close(p.done)

	for {
		select {
		case event := <-p.events:
			p.send(event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

func (p *KafkaPublisher) drain() {
	for {
		select {
		case event := <-p.events:
			p.send(event)
		default:
			return
		}
	}
}

func (p *KafkaPublisher) send(event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.metrics.EventPublished("failed")
		p.logger.Error("failed to serialize event",
			"error", err,
			"event_type", event.Type,
			"key", event.Key,
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	})
	if err != nil {
		p.metrics.EventPublished("failed")
		p.logger.Error("failed to write event",
			"error", err,
			"event_type", event.Type,
			"key", event.Key,
		)
	}
}

// Close stops accepting events, flushes what is queued and closes the
// writer. ctx bounds how long the flush may take.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	var closeErr error

	p.closeOnce.Do(func() {
		close(p.closeChan)

		select {
		case <-p.done:
		case <-ctx.Done():
			closeErr = fmt.Errorf("flush events: %w", ctx.Err())
		}

		if err := p.writer.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close kafka writer: %w", err))
		}
	})

	return closeErr
}

// Ping dials the first reachable broker. It backs the readiness probe.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := (&kafka.Dialer{}).DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close() //nolint:errcheck // probe connection
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no kafka brokers configured")
	}
	return fmt.Errorf("kafka ping: %w", lastErr)
}
