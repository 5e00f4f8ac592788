// @title         engagegov API
// @version       0.3.0
// @description   Read only aggregation of Brazilian legislative open data (Câmara dos Deputados, Senado Federal)
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"engagegov/internal/modkit"
	"engagegov/internal/platform/config"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
	phttp "engagegov/internal/platform/net/http"
	"engagegov/internal/platform/redis"
	"engagegov/internal/services/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("API_")

	// redis is optional; REDIS_URL unset leaves rc nil
	rc, err := redis.New(ctx, redis.FromEnv(root))
	if err != nil {
		l.Fatal().Err(err).Msg("redis unavailable")
	}
	if rc != nil {
		defer func() {
			if err := rc.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close redis")
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := phttp.NewServer(root)
	err = api.Mount(ctx, srv.Router(), api.Options{
		Deps: modkit.Deps{
			Log:     l,
			Cfg:     root,
			Redis:   rc,
			Metrics: metrics.New(reg),
		},
		Gatherer:       reg,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
