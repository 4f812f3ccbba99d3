// Package kafka publishes records to a Kafka-compatible broker.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrNoBrokers = errors.New("kafka: at least one broker address is required")
	ErrClosed    = errors.New("kafka: producer is closed")
)

//go:generate mockery --name IProducer
type IProducer interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
	Close()
}

// Producer is a synchronous franz-go producer.
type Producer struct {
	client *kgo.Client
	mu     sync.RWMutex
	closed bool
}

var _ IProducer = (*Producer)(nil)

// NewProducer creates a producer. Connections are opened lazily on first publish.
func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: creating client: %w", err)
	}
	return &Producer{client: client}, nil
}

// Publish produces one record and waits for the broker ack.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	record := &kgo.Record{Topic: topic, Key: []byte(key), Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce to %s: %w", topic, err)
	}
	return nil
}

// Close releases the client. Later Publish calls return ErrClosed.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.client.Close()
}
