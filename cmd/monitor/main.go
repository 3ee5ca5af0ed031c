package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"atmo-monitor/internal/adapters/mailer"
	"atmo-monitor/internal/adapters/openmeteo"
	"atmo-monitor/internal/adapters/repo"
	"atmo-monitor/internal/adapters/state"
	"atmo-monitor/internal/adapters/telegram"
	"atmo-monitor/internal/infra/config"
	"atmo-monitor/internal/infra/db"
	applog "atmo-monitor/internal/infra/log"
	"atmo-monitor/internal/infra/metrics"
	monitorusecase "atmo-monitor/internal/usecase/monitor"
	reportusecase "atmo-monitor/internal/usecase/report"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.TZ).Msg("monitor: неизвестный часовой пояс")
	}

	if cfg.PGDSN == "" {
		logger.Fatal().Msg("monitor: не указан адрес БД (PG_DSN)")
	}
	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("monitor: нет подключения к БД")
	}
	defer pool.Close()

	sampler := openmeteo.NewClient(openmeteo.Config{
		Latitude:       cfg.Station.Latitude,
		Longitude:      cfg.Station.Longitude,
		WeatherBaseURL: cfg.OpenMeteo.WeatherBaseURL,
		AirBaseURL:     cfg.OpenMeteo.AirBaseURL,
		Timeout:        cfg.OpenMeteo.Timeout,
	})
	mailTransport := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
	})
	dispatcher := reportusecase.NewService(mailTransport, logger.With().Str("component", "report").Logger())
	ops := telegram.NewOpsNotifier(cfg.Ops.TelegramToken, cfg.Ops.TelegramChat, logger.With().Str("component", "ops").Logger())

	service := monitorusecase.NewService(
		sampler,
		repo.NewPostgres(pool),
		state.NewFileStore(cfg.Monitor.StateFile),
		dispatcher,
		ops,
		loc,
		cfg.Monitor.Interval,
		logger.With().Str("component", "monitor").Logger(),
	)

	logger.Info().
		Dur("interval", cfg.Monitor.Interval).
		Str("state_file", cfg.Monitor.StateFile).
		Msg("monitor: запуск цикла")
	service.Run(ctx)
	logger.Info().Msg("monitor: остановлен")
}
