// Package kafka wraps segmentio/kafka-go behind the small producer
// surface the loan service needs for publishing domain events.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	defaultBatchTimeout = 10 * time.Millisecond
	defaultWriteTimeout = 10 * time.Second
)

// Config holds broker addresses and optional write tuning. Zero
// durations fall back to the package defaults.
type Config struct {
	Brokers      []string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// Message is a single record destined for a topic.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages to Kafka. Writers are created lazily, one
// per topic, and reused for the life of the producer. All writes require
// acknowledgement from every in-sync replica.
type Producer struct {
	cfg Config

	mu      sync.RWMutex
	writers map[string]*kafkago.Writer
	closed  bool
}

// NewProducer creates a producer for the given brokers.
func NewProducer(cfg Config) *Producer {
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	return &Producer{
		cfg:     cfg,
		writers: make(map[string]*kafkago.Writer),
	}
}

// Publish writes the messages to the topic, blocking until the brokers
// acknowledge them or ctx is done.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	w, err := p.writer(topic)
	if err != nil {
		return err
	}

	records := make([]kafkago.Message, len(messages))
	for i, msg := range messages {
		records[i] = kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			records[i].Headers = append(records[i].Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
	}

	if err := w.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes every topic writer. The producer cannot be
// used afterwards.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka: close writer for %s: %w", topic, err))
		}
	}
	p.writers = nil
	return errors.Join(errs...)
}

func (p *Producer) writer(topic string) (*kafkago.Writer, error) {
	p.mu.RLock()
	w, ok := p.writers[topic]
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, errors.New("kafka: producer is closed")
	}
	if ok {
		return w, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, errors.New("kafka: producer is closed")
	}
	if w, ok := p.writers[topic]; ok {
		return w, nil
	}

	w = &kafkago.Writer{
		Addr:         kafkago.TCP(p.cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: p.cfg.BatchTimeout,
		WriteTimeout: p.cfg.WriteTimeout,
		RequiredAcks: kafkago.RequireAll,
	}
	p.writers[topic] = w
	return w, nil
}
