package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/trial-score/internal/router"
	"github.com/DjordjeVuckovic/trial-score/internal/server"
	"github.com/DjordjeVuckovic/trial-score/pkg/config/env"
	"github.com/DjordjeVuckovic/trial-score/pkg/metrics"
	pkgserver "github.com/DjordjeVuckovic/trial-score/pkg/server"
	"github.com/labstack/echo/v4"
)

var version = "v0.0.1-default"

func main() {
	if err := env.LoadDotEnv("cmd/score_api/.env"); err != nil {
		slog.Error("Failed to load .env", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if sCfg.Env == "local" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	recorder := metrics.NewRecorder()

	s := server.New(sCfg, pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics(recorder.Handler())

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Trial score API is running")
	})

	router.NewScoreRouter(s.Echo, recorder, router.WithVersion(version)).Bind()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = s.Start(ctx)
	stop()
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
