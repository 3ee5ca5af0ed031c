package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"atmo-monitor/internal/adapters/mailer"
	"atmo-monitor/internal/adapters/openmeteo"
	"atmo-monitor/internal/adapters/sheets"
	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/cache"
	"atmo-monitor/internal/infra/config"
	applog "atmo-monitor/internal/infra/log"
	"atmo-monitor/internal/infra/metrics"
	"atmo-monitor/internal/infra/queue"
	reportusecase "atmo-monitor/internal/usecase/report"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")

	if cfg.RedisAddr == "" {
		logger.Fatal().Msg("notifier: не указан адрес Redis (REDIS_ADDR)")
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

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

	worker := &welcomeWorker{
		log:     logger,
		queue:   queue.NewRedisWelcomeQueue(rdb, cfg.Queues.Welcome),
		cache:   cache.NewRedis(rdb),
		sheet:   sheets.NewClient(sheets.Config{BaseURL: cfg.Sheet.BaseURL, Token: cfg.Sheet.Token, Timeout: cfg.Sheet.Timeout}),
		sampler: sampler,
		reports: reportusecase.NewService(mailTransport, logger.With().Str("component", "report").Logger()),
	}

	logger.Info().Str("queue", cfg.Queues.Welcome).Msg("notifier: запуск обработки очереди")
	worker.Run(ctx)
	logger.Info().Msg("notifier: остановлен")
}

type welcomeWorker struct {
	log     zerolog.Logger
	queue   domain.WelcomeQueue
	cache   domain.Cache
	sheet   domain.SheetLog
	sampler domain.Sampler
	reports domain.Dispatcher
}

func (w *welcomeWorker) Run(ctx context.Context) {
	for {
		job, err := w.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.log.Error().Err(err).Msg("notifier: ошибка чтения очереди")
			time.Sleep(time.Second)
			continue
		}

		jobLog := w.log.With().Str("job_id", job.ID).Str("email", job.Email).Logger()

		if job.Email == "" {
			jobLog.Error().Msg("notifier: получена задача без адреса, пропускаем")
			continue
		}

		if err := w.handle(ctx, job, jobLog); err != nil {
			jobLog.Error().Err(err).Msg("notifier: задача завершилась ошибкой")
			continue
		}
		jobLog.Info().Msg("notifier: приветственный отчёт обработан")
	}
}

// handle переносит подписчика в журнальную таблицу и отправляет ему
// немедленный отчёт. Журналирование ограничено ключом в Redis: повторная
// постановка той же задачи в пределах суток не плодит дублей строк.
func (w *welcomeWorker) handle(ctx context.Context, job domain.WelcomeJob, jobLog zerolog.Logger) error {
	err := w.cache.Once("sheetlog:"+job.Email, 24*time.Hour, func() error {
		return w.appendToSheet(ctx, job.Email, jobLog)
	})
	if err != nil {
		jobLog.Error().Err(err).Msg("notifier: не удалось записать подписчика в таблицу")
	}

	reading, err := w.sampler.Sample(ctx)
	if err != nil {
		return err
	}
	level := domain.ClassifyDust(reading.PM10, reading.WindSpeed)
	if err := w.reports.SendTo(ctx, job.Email, reading, level, false); err != nil {
		if errors.Is(err, domain.ErrMailerNotConfigured) {
			jobLog.Debug().Msg("notifier: smtp не настроен, приветственное письмо пропущено")
			return nil
		}
		return err
	}
	return nil
}

func (w *welcomeWorker) appendToSheet(ctx context.Context, email string, jobLog zerolog.Logger) error {
	known, err := w.sheet.ListEmails(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSheetNotConfigured) {
			jobLog.Debug().Msg("notifier: таблица не настроена, журналирование пропущено")
			return nil
		}
		return err
	}
	for _, e := range known {
		if e == email {
			return nil
		}
	}
	return w.sheet.AppendSubscriber(ctx, email)
}
