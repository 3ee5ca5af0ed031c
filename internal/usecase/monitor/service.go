package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

const dateLayout = "2006-01-02"

// Service — цикл мониторинга: выборка условий, классификация, решение о
// рассылках по сохранённому состоянию, рассылка и запись состояния.
// Работает в одном экземпляре; параллельных циклов не бывает.
type Service struct {
	log         zerolog.Logger
	sampler     domain.Sampler
	subscribers domain.SubscriberRepo
	state       domain.StateStore
	dispatcher  domain.Dispatcher
	ops         domain.OpsNotifier
	loc         *time.Location
	interval    time.Duration
}

// NewService создаёт цикл мониторинга.
func NewService(
	sampler domain.Sampler,
	subscribers domain.SubscriberRepo,
	state domain.StateStore,
	dispatcher domain.Dispatcher,
	ops domain.OpsNotifier,
	loc *time.Location,
	interval time.Duration,
	logger zerolog.Logger,
) *Service {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:         logger,
		sampler:     sampler,
		subscribers: subscribers,
		state:       state,
		dispatcher:  dispatcher,
		ops:         ops,
		loc:         loc,
		interval:    interval,
	}
}

// Run крутит циклы до отмены контекста. Первый цикл выполняется сразу.
// Ошибка одного цикла логируется и не останавливает цикл в целом.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		start := time.Now()
		if err := s.RunCycle(ctx, time.Now()); err != nil {
			s.log.Error().Err(err).Msg("monitor: цикл пропущен")
			if s.ops != nil {
				s.ops.Notify(ctx, "Cycle de surveillance en échec: "+err.Error())
			}
		}
		metrics.CycleDuration.Observe(time.Since(start).Seconds())

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunCycle выполняет один цикл на момент now. Ошибка означает, что цикл
// пропущен целиком: состояние не изменено, уведомления не отправлены.
func (s *Service) RunCycle(ctx context.Context, now time.Time) error {
	reading, err := s.sampler.Sample(ctx)
	if err != nil {
		metrics.SampleErrors.Inc()
		return fmt.Errorf("выборка условий: %w", err)
	}

	level := domain.ClassifyDust(reading.PM10, reading.WindSpeed)
	st := s.state.Load()
	today := now.In(s.loc).Format(dateLayout)

	alertFires := (level == domain.AlertEleve || level == domain.AlertCritique) &&
		level != st.LastAlertLevel
	dailyFires := st.LastDaily != today

	var emails []string
	if alertFires || dailyFires {
		subs, err := s.subscribers.ListSubscribers(ctx)
		if err != nil {
			return fmt.Errorf("список подписчиков: %w", err)
		}
		emails = make([]string, 0, len(subs))
		for _, sub := range subs {
			emails = append(emails, sub.Email)
		}
	}

	if alertFires {
		sent := s.dispatcher.Broadcast(ctx, emails, reading, level, true)
		s.log.Info().
			Str("level", level.String()).
			Int("sent", sent).
			Int("subscribers", len(emails)).
			Float64("pm10", reading.PM10).
			Float64("wind", reading.WindSpeed).
			Msg("monitor: разослана тревога")
		metrics.IncAlertTransition(level.String())
		if s.ops != nil {
			s.ops.Notify(ctx, fmt.Sprintf("⚠️ ALERTE %s : %s (PM10 %.0f µg/m³, vent %.0f km/h)",
				level, level.Text(), reading.PM10, reading.WindSpeed))
		}
		st.LastAlertLevel = level
	} else if level == domain.AlertNormal {
		// Тихая разрядка: уведомление «всё чисто» не отправляется,
		// но защита от повторной тревоги снимается.
		st.LastAlertLevel = domain.AlertNormal
	}

	if dailyFires {
		sent := s.dispatcher.Broadcast(ctx, emails, reading, level, false)
		s.log.Info().
			Str("date", today).
			Int("sent", sent).
			Int("subscribers", len(emails)).
			Msg("monitor: разослан ежедневный отчёт")
		st.LastDaily = today
	}

	if err := s.state.Save(st); err != nil {
		return fmt.Errorf("сохранение состояния: %w", err)
	}
	return nil
}
