package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	app "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/encoding/avro"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// PurchaseConsumer reads purchase events back off the bus and hands
// them to the service for archiving.
type PurchaseConsumer struct {
	reader  *kafkago.Reader
	codec   *avro.Codec
	handler *app.Service
	log     logger.Logger
}

func NewPurchaseConsumer(cfg config.KafkaConfig, handler *app.Service, log logger.Logger) (*PurchaseConsumer, error) {
	codec, err := avro.NewCodec(avro.PurchaseEventSchema)
	if err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.PurchaseTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &PurchaseConsumer{
		reader:  reader,
		codec:   codec,
		handler: handler,
		log:     log,
	}, nil
}

// Start blocks reading messages until the context is cancelled or the
// reader fails. Undecodable messages are logged and skipped so one bad
// payload cannot wedge the group.
func (c *PurchaseConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		native, err := c.codec.DecodeNative(msg.Value)
		if err != nil {
			c.log.Warn("skip undecodable purchase event", logger.Error(err))
			continue
		}

		evt, err := avro.FromPurchaseEventNative(native)
		if err != nil {
			c.log.Warn("skip malformed purchase event", logger.Error(err))
			continue
		}

		if err := c.handler.HandleTrackedPurchase(ctx, evt); err != nil {
			return fmt.Errorf("handle purchase event: %w", err)
		}
	}
}

func (c *PurchaseConsumer) Close() {
	_ = c.reader.Close()
}
