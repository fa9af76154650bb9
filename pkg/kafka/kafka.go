package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	cb "github.com/Astemirdum/library-records/pkg/circuit_breaker"
)

const BorrowTopic = "borrow-events"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
	Topic string   `envconfig:"KAFKA_TOPIC" default:"borrow-events"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

type EventType string

const (
	EventBorrowed EventType = "BORROWED"
	EventReturned EventType = "RETURNED"
	EventExtended EventType = "EXTENDED"
	EventDeleted  EventType = "DELETED"
)

type BorrowEvent struct {
	EventID    string    `json:"event_id"`
	EventType  EventType `json:"event_type"`
	RecordID   int       `json:"record_id"`
	UserID     int       `json:"user_id"`
	BookID     int       `json:"book_id"`
	DueDate    string    `json:"due_date"`
	FineAmount *float64  `json:"fine_amount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event BorrowEvent) error
	Close() error
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       cb.CircuitBreaker
}

// NewPublisher sends events through producer. Calls stop reaching the broker while the breaker is open.
func NewPublisher(producer sarama.SyncProducer, topic string) Publisher {
	if topic == "" {
		topic = BorrowTopic
	}
	return &publisher{
		producer: producer,
		topic:    topic,
		cb:       cb.New(20, 30*time.Second, 0.5, 3),
	}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (p *publisher) Publish(ctx context.Context, event BorrowEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		// one partition per record keeps its lifecycle ordered
		Key:       sarama.StringEncoder(strconv.Itoa(event.RecordID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, BorrowEvent) error { return nil }
func (nopPublisher) Close() error                               { return nil }
