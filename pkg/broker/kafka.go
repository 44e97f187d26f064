package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/carhub/catalog-service/config"
	"github.com/segmentio/kafka-go"
)

// Publisher writes JSON events to a single kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, key string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
