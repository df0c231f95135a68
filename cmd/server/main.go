package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pharmadesk/internal/api"
	"pharmadesk/internal/clock"
	"pharmadesk/internal/config"
	"pharmadesk/internal/logger"
	"pharmadesk/internal/observability"
	"pharmadesk/internal/pharmacy"
	"pharmadesk/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	clk := clock.System()
	store := pharmacy.New(clk, zlog.Named("store"))

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		observability.NewRecorder(reg, store)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	catalog := seed.Medicines(cfg.SeedPath, clk.Now())
	for i := range catalog {
		if err := store.SaveMedicine(&catalog[i]); err != nil {
			zlog.Warn("skipping seed row", zap.String("name", catalog[i].Name), zap.Error(err))
		}
	}
	zlog.Info("seeded medicine catalog", zap.Int("rows", len(catalog)))

	handler := api.New(store, zlog.Named("http"), metricsHandler)

	zlog.Info("pharmadesk server starting", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
