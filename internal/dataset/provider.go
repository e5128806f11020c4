package dataset

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"enrolwatch/internal/config"
)

// Provider is the process-wide dataset cache: populate once, read many. A
// failed load leaves the cache empty so the next call retries.
type Provider struct {
	cfg    config.DatasetConfig
	logger *slog.Logger

	mu sync.Mutex
	ds *Dataset
}

func NewProvider(cfg config.DatasetConfig, logger *slog.Logger) *Provider {
	return &Provider{cfg: cfg, logger: logger}
}

// Dataset returns the cached snapshot, loading it on first use.
func (p *Provider) Dataset(ctx context.Context) (*Dataset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ds != nil {
		return p.ds, nil
	}
	ds, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	p.ds = ds
	if p.logger != nil {
		p.logger.Info("dataset loaded",
			"source", p.cfg.Source,
			"rows", len(ds.Records),
			"months", len(ds.Months()),
			"extra_columns", len(ds.ExtraColumns),
		)
	}
	return ds, nil
}

// Reload discards the cached snapshot and loads a fresh one.
func (p *Provider) Reload(ctx context.Context) (*Dataset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ds, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	p.ds = ds
	return ds, nil
}

func (p *Provider) load(ctx context.Context) (*Dataset, error) {
	if strings.ToLower(p.cfg.Source) == "sql" {
		return LoadSQL(ctx, p.cfg, p.logger)
	}
	return LoadCSV(p.cfg.Path, p.logger)
}
