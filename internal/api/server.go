package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"enrolwatch/internal/config"
	"enrolwatch/internal/dataset"
	"enrolwatch/internal/engine"
	"enrolwatch/internal/ml"
	"enrolwatch/internal/notify"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type Server struct {
	cfg       *config.Manager
	provider  *dataset.Provider
	adapter   *ml.Adapter
	publisher *notify.Publisher
	logger    *slog.Logger
	version   string
}

type statusResponse struct {
	Status      string   `json:"status"`
	Time        string   `json:"time"`
	Version     string   `json:"version"`
	ConfigPath  string   `json:"config_path"`
	DatasetRows int      `json:"dataset_rows"`
	Months      []string `json:"months"`
	ModelLoaded bool     `json:"model_loaded"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func Start(ctx context.Context, cfg *config.Manager, provider *dataset.Provider, adapter *ml.Adapter, publisher *notify.Publisher, logger *slog.Logger, version string) *http.Server {
	if cfg == nil {
		return nil
	}
	current := cfg.Get().API
	if !current.Enabled {
		if logger != nil {
			logger.Info("api disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("api enabled", "addr", current.Addr)
	}
	server := &Server{
		cfg:       cfg,
		provider:  provider,
		adapter:   adapter,
		publisher: publisher,
		logger:    logger,
		version:   version,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.handleHealth)
	mux.HandleFunc("/status", server.handleStatus)
	mux.HandleFunc("/alerts/biometric-integrity", server.handleBiometricIntegrity)
	mux.HandleFunc("/alerts/lost-generation", server.handleLostGeneration)
	mux.HandleFunc("/alerts/migration", server.handleMigration)
	mux.HandleFunc("/alerts/infrastructure", server.handleInfrastructure)
	mux.HandleFunc("/alerts/migration-ml", server.handleMigrationML)

	httpServer := &http.Server{Addr: current.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error("api server error", "err", err)
			}
		}
	}()
	return httpServer
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	resp := statusResponse{
		Status:     "ok",
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Version:    s.version,
		ConfigPath: s.cfg.Path(),
	}
	if s.adapter != nil {
		resp.ModelLoaded = s.adapter.Loaded()
	}
	if ds, err := s.provider.Dataset(r.Context()); err == nil {
		resp.DatasetRows = len(ds.Records)
		resp.Months = ds.Months()
	}
	writeJSON(w, http.StatusOK, resp)
}

// alertQuery parses the shared month/limit query parameters. A malformed
// month is a client error; limit is clamped to [1, 100] with the module
// default applied when absent.
func alertQuery(r *http.Request, defaultLimit int) (month string, limit int, err error) {
	month = r.URL.Query().Get("month")
	if month != "" && !monthPattern.MatchString(month) {
		return "", 0, errors.New("month must be formatted YYYY-MM")
	}
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return "", 0, errors.New("limit must be an integer")
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	return month, limit, nil
}

func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	ds, err := s.provider.Dataset(r.Context())
	if err != nil {
		if errors.Is(err, dataset.ErrValidation) {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		} else {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "dataset unavailable: " + err.Error()})
		}
		return nil, false
	}
	return ds, true
}

func (s *Server) handleBiometricIntegrity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, limit, err := alertQuery(r, s.cfg.Get().Alerting.BiometricLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resolved, alerts := engine.BiometricIntegrityAlerts(ds, month, limit)
	if len(alerts) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No biometric integrity alerts available for the requested month"})
		return
	}
	s.publisher.Publish(r.Context(), "biometric-integrity", resolved, alerts, len(alerts))
	writeJSON(w, http.StatusOK, map[string]any{"month": resolved, "alerts": alerts})
}

func (s *Server) handleLostGeneration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, limit, err := alertQuery(r, s.cfg.Get().Alerting.LostGenerationLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resolved, alerts := engine.LostGenerationAlerts(ds, month, limit)
	if len(alerts) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No lost-generation alerts available for the requested month"})
		return
	}
	s.publisher.Publish(r.Context(), "lost-generation", resolved, alerts, len(alerts))
	writeJSON(w, http.StatusOK, map[string]any{"month": resolved, "alerts": alerts})
}

func (s *Server) handleMigration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, limit, err := alertQuery(r, s.cfg.Get().Alerting.MigrationLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resolved, alerts := engine.MigrationAlerts(ds, month, limit)
	if len(alerts) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No migration alerts available for the requested month"})
		return
	}
	s.publisher.Publish(r.Context(), "migration", resolved, alerts, len(alerts))
	writeJSON(w, http.StatusOK, map[string]any{"month": resolved, "alerts": alerts})
}

func (s *Server) handleInfrastructure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, limit, err := alertQuery(r, s.cfg.Get().Alerting.InfrastructureLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resolved, alerts := engine.InfrastructureAlerts(ds, month, limit)
	if len(alerts) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No infrastructure alerts available for the requested month"})
		return
	}
	s.publisher.Publish(r.Context(), "infrastructure", resolved, alerts, len(alerts))
	writeJSON(w, http.StatusOK, map[string]any{"month": resolved, "alerts": alerts})
}

func (s *Server) handleMigrationML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, limit, err := alertQuery(r, s.cfg.Get().Alerting.MigrationMLLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resolved, alerts, err := s.adapter.Alerts(ds, month, limit)
	if err != nil {
		if errors.Is(err, ml.ErrArtifactNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
		} else {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		}
		return
	}
	if len(alerts) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No ML migration alerts available for the requested month"})
		return
	}
	s.publisher.Publish(r.Context(), "migration-ml", resolved, alerts, len(alerts))
	writeJSON(w, http.StatusOK, map[string]any{"month": resolved, "alerts": alerts})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
