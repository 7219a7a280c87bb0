package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/config"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/stores"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/telemetry"
)

// Server serves the coordinator's HTTP API over a cached snapshot.
type Server struct {
	cfg     config.ServerConfig
	dataDir string
	store   stores.SnapshotStore
	eng     *engine.Engine
	metrics *telemetry.Metrics
	logger  zerolog.Logger

	mu     sync.RWMutex
	cached *fleet.Snapshot
}

// New creates a server. The engine is shared safely across requests since
// it is stateless; the snapshot cache is guarded by the server's mutex.
func New(cfg config.ServerConfig, dataDir string, store stores.SnapshotStore, eng *engine.Engine, metrics *telemetry.Metrics, logger zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		dataDir: dataDir,
		store:   store,
		eng:     eng,
		metrics: metrics,
		logger:  logger.With().Str("component", "server").Logger(),
	}
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/scan", s.handleScan)
	mux.HandleFunc("POST /api/match", s.handleMatch)
	mux.HandleFunc("POST /api/reassign", s.handleReassign)
	mux.HandleFunc("GET /api/cost", s.handleCost)
	if h := s.metrics.Handler(); h != nil {
		mux.Handle("GET /metrics", h)
	}

	httpSrv := &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.WatchData {
		stop, err := s.watchData(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Data watcher unavailable, snapshot reloads on every request")
		} else {
			defer stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.ListenAddress).Msg("HTTP API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// snapshot returns the cached snapshot, loading it on first use or after
// invalidation.
func (s *Server) snapshot(ctx context.Context) (*fleet.Snapshot, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		s.metrics.RecordSnapshotLoad(err, 0, 0, 0)
		return nil, err
	}
	s.metrics.RecordSnapshotLoad(nil, len(snap.Pilots), len(snap.Drones), len(snap.Missions))
	s.cached = snap
	return snap, nil
}

// invalidate drops the cached snapshot so the next request reloads it.
func (s *Server) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// watchData invalidates the snapshot cache when the fleet sheets change.
func (s *Server) watchData(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dataDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					s.logger.Debug().Str("file", event.Name).Msg("Data change detected, invalidating snapshot cache")
					s.invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn().Err(err).Msg("Data watcher error")
			}
		}
	}()

	s.logger.Info().Str("dir", s.dataDir).Msg("Watching data directory")
	return func() { _ = watcher.Close() }, nil
}
