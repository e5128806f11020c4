// Package notify publishes computed alert batches to Kafka for downstream
// consumers. Publication is best-effort; the API response never waits on it.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"enrolwatch/internal/config"
)

type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// New returns nil when publishing is disabled; callers treat a nil publisher
// as a no-op.
func New(cfg config.PublishConfig, logger *slog.Logger) *Publisher {
	if !cfg.Enabled {
		if logger != nil {
			logger.Info("alert publishing disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("alert publishing enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

type batchMessage struct {
	Module      string `json:"module"`
	Month       string `json:"month"`
	Count       int    `json:"count"`
	GeneratedAt string `json:"generated_at"`
	Alerts      any    `json:"alerts"`
}

// Publish writes one message per computed batch, keyed by module and month so
// consumers can compact by the latest computation.
func (p *Publisher) Publish(ctx context.Context, module, month string, alerts any, count int) {
	if p == nil || p.writer == nil {
		return
	}
	payload, err := json.Marshal(batchMessage{
		Module:      module,
		Month:       month,
		Count:       count,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Alerts:      alerts,
	})
	if err != nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(module + "/" + month),
			Value: payload,
		}); err != nil && p.logger != nil {
			p.logger.Warn("alert publish failed", "module", module, "err", err)
		}
	}()
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
