package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/interverse/verse-go/internal/logger"
)

const metricsReadHeaderTimeout = 5 * time.Second

// StartMetricsServer exposes /metrics and /healthz on addr. Returns nil when
// addr is empty (metrics disabled).
func StartMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	logger.Info(LogMsgMetricsServerStarted, "addr", addr)
	return srv
}

// StopMetricsServer shuts the metrics server down, tolerating nil.
func StopMetricsServer(ctx context.Context, srv *http.Server) {
	if srv == nil {
		return
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn(LogMsgMetricsShutdownFailed, "error", err)
		return
	}
	logger.Info(LogMsgMetricsServerStopped)
}
