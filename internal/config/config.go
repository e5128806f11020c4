package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  string         `json:"log_level" yaml:"log_level"`
	LogFormat string         `json:"log_format" yaml:"log_format"`
	Dataset   DatasetConfig  `json:"dataset" yaml:"dataset"`
	Model     ModelConfig    `json:"model" yaml:"model"`
	Alerting  AlertingConfig `json:"alerting" yaml:"alerting"`
	API       APIConfig      `json:"api" yaml:"api"`
	Publish   PublishConfig  `json:"publish" yaml:"publish"`
}

// DatasetConfig selects the dataset source. Source "csv" reads Path; source
// "sql" reads Table through Driver/DSN.
type DatasetConfig struct {
	Source string `json:"source" yaml:"source"`
	Path   string `json:"path" yaml:"path"`
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
	Table  string `json:"table" yaml:"table"`
}

// ModelConfig lists candidate artifact paths, searched in order; the first
// existing path wins.
type ModelConfig struct {
	ModelPaths     []string `json:"model_paths" yaml:"model_paths"`
	ThresholdPaths []string `json:"threshold_paths" yaml:"threshold_paths"`
}

type AlertingConfig struct {
	BiometricLimit      int `json:"biometric_limit" yaml:"biometric_limit"`
	LostGenerationLimit int `json:"lost_generation_limit" yaml:"lost_generation_limit"`
	MigrationLimit      int `json:"migration_limit" yaml:"migration_limit"`
	InfrastructureLimit int `json:"infrastructure_limit" yaml:"infrastructure_limit"`
	MigrationMLLimit    int `json:"migration_ml_limit" yaml:"migration_ml_limit"`
}

type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

type PublishConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "json",
		Dataset: DatasetConfig{
			Source: "csv",
			Path:   "data/merged_aadhaar_data_sample.csv",
			Driver: "sqlite",
			DSN:    "file:enrolwatch.db?_pragma=busy_timeout(5000)",
			Table:  "enrolment_records",
		},
		Model: ModelConfig{
			ModelPaths: []string{
				"models/migration_score_model.json",
				"migration_score_model.json",
			},
			ThresholdPaths: []string{
				"models/migration_thresholds.json",
				"migration_thresholds.json",
			},
		},
		Alerting: AlertingConfig{
			BiometricLimit:      20,
			LostGenerationLimit: 15,
			MigrationLimit:      10,
			InfrastructureLimit: 20,
			MigrationMLLimit:    10,
		},
		API:     APIConfig{Enabled: true, Addr: ":8081"},
		Publish: PublishConfig{Enabled: false},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return errors.New("config path or config is empty")
	}
	var data []byte
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = "csv"
	}
	if cfg.Dataset.Table == "" {
		cfg.Dataset.Table = "enrolment_records"
	}
	if len(cfg.Model.ModelPaths) == 0 {
		cfg.Model.ModelPaths = DefaultConfig().Model.ModelPaths
	}
	if len(cfg.Model.ThresholdPaths) == 0 {
		cfg.Model.ThresholdPaths = DefaultConfig().Model.ThresholdPaths
	}
	if cfg.Alerting.BiometricLimit <= 0 {
		cfg.Alerting.BiometricLimit = 20
	}
	if cfg.Alerting.LostGenerationLimit <= 0 {
		cfg.Alerting.LostGenerationLimit = 15
	}
	if cfg.Alerting.MigrationLimit <= 0 {
		cfg.Alerting.MigrationLimit = 10
	}
	if cfg.Alerting.InfrastructureLimit <= 0 {
		cfg.Alerting.InfrastructureLimit = 20
	}
	if cfg.Alerting.MigrationMLLimit <= 0 {
		cfg.Alerting.MigrationMLLimit = 10
	}
}

func Validate(cfg *Config) error {
	switch strings.ToLower(cfg.Dataset.Source) {
	case "csv":
		if cfg.Dataset.Path == "" {
			return errors.New("dataset.path required when dataset.source is csv")
		}
	case "sql":
		if cfg.Dataset.Driver == "" || cfg.Dataset.DSN == "" {
			return errors.New("dataset.driver and dataset.dsn required when dataset.source is sql")
		}
	default:
		return fmt.Errorf("unsupported dataset.source: %q", cfg.Dataset.Source)
	}
	if cfg.API.Enabled && cfg.API.Addr == "" {
		return errors.New("api.addr required when api.enabled is true")
	}
	if cfg.Publish.Enabled {
		if len(cfg.Publish.Brokers) == 0 || cfg.Publish.Topic == "" {
			return errors.New("publish requires brokers and topic")
		}
	}
	return nil
}

type Manager struct {
	path    string
	cfg     atomic.Value
	modTime time.Time
}

func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path}
	m.cfg.Store(cfg)
	info, err := os.Stat(path)
	if err == nil {
		m.modTime = info.ModTime()
	}
	return m, nil
}

// NewStaticManager wraps an in-memory config with no backing file. Reload and
// Update become no-ops beyond swapping the stored value.
func NewStaticManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &Manager{}
	m.cfg.Store(cfg)
	return m
}

func (m *Manager) Get() *Config {
	if v := m.cfg.Load(); v != nil {
		return v.(*Config)
	}
	return DefaultConfig()
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Reload() (*Config, error) {
	if m.path == "" {
		return m.Get(), nil
	}
	cfg, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.cfg.Store(cfg)
	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	return cfg, nil
}

func (m *Manager) NeedsReload() (bool, error) {
	if m.path == "" {
		return false, nil
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return false, err
	}
	return info.ModTime().After(m.modTime), nil
}

func (m *Manager) Watch(interval time.Duration, onReload func(*Config), onError func(error), stop <-chan struct{}) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			needs, err := m.NeedsReload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if !needs {
				continue
			}
			cfg, err := m.Reload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onReload != nil {
				onReload(cfg)
			}
		case <-stop:
			return
		}
	}
}

func ResolvePath(path string) string {
	if path == "" {
		return path
	}
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}
