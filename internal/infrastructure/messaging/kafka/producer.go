package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/tracking"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/encoding/avro"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// PurchaseProducer publishes avro-encoded purchase events. Records are
// keyed by order id so all events for one order land on one partition.
type PurchaseProducer struct {
	client *kgo.Client
	codec  *avro.Codec
	topic  string
	log    logger.Logger
}

func NewPurchaseProducer(cfg config.KafkaConfig, log logger.Logger) (*PurchaseProducer, error) {
	codec, err := avro.NewCodec(avro.PurchaseEventSchema)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.PurchaseTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("kafka producer ready",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.PurchaseTopic),
	)

	return &PurchaseProducer{
		client: client,
		codec:  codec,
		topic:  cfg.PurchaseTopic,
		log:    log,
	}, nil
}

func (p *PurchaseProducer) PublishPurchase(ctx context.Context, evt tracking.PurchaseEvent) error {
	payload, err := p.codec.EncodeNative(avro.ToPurchaseEventNative(evt))
	if err != nil {
		return fmt.Errorf("encode purchase event: %w", err)
	}

	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(evt.OrderID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_id", Value: []byte(uuid.NewString())},
		},
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		p.log.Error("publish purchase event failed",
			logger.String("topic", p.topic),
			logger.String("order_id", evt.OrderID),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	return nil
}

func (p *PurchaseProducer) Close(ctx context.Context) error {
	p.log.Info("closing kafka producer", logger.String("topic", p.topic))
	p.client.Close()
	return nil
}
