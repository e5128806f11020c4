package ml

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"enrolwatch/internal/config"
	"enrolwatch/internal/dataset"
	"enrolwatch/internal/engine"
	"enrolwatch/internal/model"
)

// ErrArtifactNotFound marks a missing model or threshold artifact. It is a
// fatal, reported condition; there is no fallback to the rule-based score.
var ErrArtifactNotFound = errors.New("model artifact not found")

// Adapter lazily loads the model and threshold artifacts on first use and
// keeps them for the process lifetime. Loading is both-or-neither: if either
// artifact fails, nothing is cached and the next call retries.
type Adapter struct {
	cfg    config.ModelConfig
	logger *slog.Logger

	mu         sync.Mutex
	model      *LinearModel
	thresholds *Thresholds
}

func NewAdapter(cfg config.ModelConfig, logger *slog.Logger) *Adapter {
	return &Adapter{cfg: cfg, logger: logger}
}

func (a *Adapter) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model != nil && a.thresholds != nil
}

func (a *Adapter) ensureLoaded() (*LinearModel, *Thresholds, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.model != nil && a.thresholds != nil {
		return a.model, a.thresholds, nil
	}

	modelPath := firstExisting(a.cfg.ModelPaths)
	threshPath := firstExisting(a.cfg.ThresholdPaths)
	if modelPath == "" || threshPath == "" {
		return nil, nil, fmt.Errorf("%w: searched model=%s thresholds=%s",
			ErrArtifactNotFound,
			strings.Join(a.cfg.ModelPaths, ","),
			strings.Join(a.cfg.ThresholdPaths, ","),
		)
	}

	m, err := LoadModel(modelPath)
	if err != nil {
		return nil, nil, err
	}
	t, err := LoadThresholds(threshPath)
	if err != nil {
		return nil, nil, err
	}

	a.model = m
	a.thresholds = t
	if a.logger != nil {
		a.logger.Info("migration model loaded",
			"model", modelPath,
			"thresholds", threshPath,
			"format", m.Format,
		)
	}
	return m, t, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Alerts runs the full inference pipeline for the requested (or latest)
// month: rebuild features, predict, convert predictions onto the inflow
// scale, tier, and rank. The returned month is empty when the requested month
// is absent from the dataset.
func (a *Adapter) Alerts(ds *dataset.Dataset, month string, limit int) (string, []model.MigrationMLAlert, error) {
	m, t, err := a.ensureLoaded()
	if err != nil {
		return "", nil, err
	}
	if ds.Empty() {
		return "", nil, nil
	}
	target := month
	if target == "" {
		target = ds.LatestMonth()
	}
	if target == "" || !ds.HasMonth(target) {
		return "", nil, nil
	}

	all := BuildFeatures(ds)
	rows := make([]FeatureRow, 0, len(all))
	for _, row := range all {
		if row.Month == target {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return target, nil, nil
	}

	preds := m.Predict(rows)
	alerts := make([]model.MigrationMLAlert, 0, len(rows))
	for i, row := range rows {
		score := engine.Round2(engine.ToInflowScore(preds[i], t.RawMin, t.RawMax))
		tier := engine.InflowTier(score, t.Watch, t.Surge)
		alerts = append(alerts, model.MigrationMLAlert{
			State:           row.State,
			District:        row.District,
			Month:           row.Month,
			MLInflowScore:   score,
			Tier:            tier,
			Recommendations: engine.MigrationRecommendations(tier),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].MLInflowScore > alerts[j].MLInflowScore })
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return target, alerts, nil
}
