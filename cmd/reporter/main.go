package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"atmo-monitor/internal/adapters/mailer"
	"atmo-monitor/internal/adapters/openmeteo"
	"atmo-monitor/internal/adapters/sheets"
	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/config"
	applog "atmo-monitor/internal/infra/log"
	reportusecase "atmo-monitor/internal/usecase/report"
)

// reporter — разовая рассылка ежедневного отчёта по списку адресов из
// журнальной таблицы. Запускается внешним планировщиком (cron, CI) и
// завершает процесс по окончании рассылки.
func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheet := sheets.NewClient(sheets.Config{
		BaseURL: cfg.Sheet.BaseURL,
		Token:   cfg.Sheet.Token,
		Timeout: cfg.Sheet.Timeout,
	})
	emails, err := sheet.ListEmails(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSheetNotConfigured) {
			logger.Fatal().Msg("reporter: не настроен доступ к таблице подписчиков (SHEET_BRIDGE_URL)")
		}
		logger.Fatal().Err(err).Msg("reporter: не удалось получить список подписчиков")
	}
	if len(emails) == 0 {
		logger.Info().Msg("reporter: список подписчиков пуст, рассылка не требуется")
		return
	}
	logger.Info().Int("subscribers", len(emails)).Msg("reporter: список подписчиков получен")

	sampler := openmeteo.NewClient(openmeteo.Config{
		Latitude:       cfg.Station.Latitude,
		Longitude:      cfg.Station.Longitude,
		WeatherBaseURL: cfg.OpenMeteo.WeatherBaseURL,
		AirBaseURL:     cfg.OpenMeteo.AirBaseURL,
		Timeout:        cfg.OpenMeteo.Timeout,
	})
	reading, err := sampler.Sample(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("reporter: не удалось получить показания станции")
	}
	level := domain.ClassifyDust(reading.PM10, reading.WindSpeed)

	mailTransport := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
	})
	dispatcher := reportusecase.NewService(mailTransport, logger.With().Str("component", "report").Logger())

	sent := dispatcher.Broadcast(ctx, emails, reading, level, false)
	logger.Info().
		Int("sent", sent).
		Int("total", len(emails)).
		Str("level", level.String()).
		Msg("reporter: рассылка завершена")
}
