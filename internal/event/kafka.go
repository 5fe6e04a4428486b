package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// kafkaWriter is the subset of *kafka.Writer the forwarder uses
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder writes events to a single topic keyed by player ID,
// so one player's events stay ordered within a partition.
type KafkaForwarder struct {
	writer kafkaWriter
}

// NewKafkaForwarder creates a forwarder for the given brokers and topic
func NewKafkaForwarder(brokers []string, topic string) (*KafkaForwarder, error) {
	if len(brokers) == 0 {
		return nil, errors.New(ErrMsgNoKafkaBrokers)
	}
	return &KafkaForwarder{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: KafkaWriteTimeout,
		},
	}, nil
}

// Forward writes the event as one message
func (f *KafkaForwarder) Forward(ctx context.Context, event Event) error {
	msg, err := KafkaMessage(event, time.Now())
	if err != nil {
		return err
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf(ErrMsgWriteKafka, event.Type, err)
	}
	return nil
}

// Close flushes and closes the writer
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

// KafkaMessage builds the wire message for an event
func KafkaMessage(event Event, now time.Time) (kafka.Message, error) {
	data, err := encode(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.PlayerID()),
		Value: data,
		Time:  now,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSchemaVersion, Value: []byte(event.Version)},
		},
	}, nil
}
