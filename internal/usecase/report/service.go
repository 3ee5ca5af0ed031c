package report

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

// Service рассылает отчёты по электронной почте.
type Service struct {
	log    zerolog.Logger
	mailer domain.Mailer
}

var _ domain.Dispatcher = (*Service)(nil)

// NewService создаёт сервис рассылки.
func NewService(mailer domain.Mailer, logger zerolog.Logger) *Service {
	return &Service{log: logger, mailer: mailer}
}

// SendTo отправляет один отчёт одному получателю.
func (s *Service) SendTo(ctx context.Context, email string, reading domain.Reading, level domain.AlertLevel, isAlert bool) error {
	html, err := Render(reading, level)
	if err != nil {
		return err
	}
	return s.send(ctx, email, html, isAlert)
}

// Broadcast рассылает один и тот же отчёт всем получателям параллельно.
// Отправки независимы: отказ одного адреса логируется и не мешает остальным.
// Возвращает число успешно доставленных писем после завершения всех отправок.
func (s *Service) Broadcast(ctx context.Context, emails []string, reading domain.Reading, level domain.AlertLevel, isAlert bool) int {
	if len(emails) == 0 {
		return 0
	}

	html, err := Render(reading, level)
	if err != nil {
		s.log.Error().Err(err).Msg("report: не удалось построить отчёт")
		return 0
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			if err := s.send(ctx, email, html, isAlert); err != nil {
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(email)
	}
	wg.Wait()
	return sent
}

func (s *Service) send(ctx context.Context, email, html string, isAlert bool) error {
	kind := "daily"
	if isAlert {
		kind = "alert"
	}
	err := s.mailer.Send(ctx, domain.MailMessage{
		To:       email,
		Subject:  Subject(isAlert),
		HTMLBody: html,
		TextBody: PlainFallback,
	})
	if errors.Is(err, domain.ErrMailerNotConfigured) {
		// Не ошибка: окружение без SMTP просто не рассылает почту.
		s.log.Debug().Str("email", email).Msg("report: smtp не настроен, отправка пропущена")
		return err
	}
	metrics.ObserveNotification(kind, err)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Str("kind", kind).Msg("report: не удалось отправить письмо")
		return fmt.Errorf("отправка отчёта: %w", err)
	}
	return nil
}
