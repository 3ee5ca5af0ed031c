package subscribe

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
)

// ErrInvalidEmail возвращается при некорректном адресе.
var ErrInvalidEmail = errors.New("некорректный адрес электронной почты")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Service регистрирует подписчиков и ставит фоновые задачи приветствия.
type Service struct {
	log         zerolog.Logger
	subscribers domain.SubscriberRepo
	queue       domain.WelcomeQueue
}

// NewService создаёт сервис подписки. Очередь может быть nil: тогда
// приветственные задачи не ставятся.
func NewService(subscribers domain.SubscriberRepo, queue domain.WelcomeQueue, logger zerolog.Logger) *Service {
	return &Service{log: logger, subscribers: subscribers, queue: queue}
}

// Subscribe валидирует адрес и добавляет его в список, если его там нет.
// Для новой подписки ставится задача приветствия: запись в таблицу и
// немедленный отчёт. Сбой постановки задачи логируется и не мешает подписке.
func (s *Service) Subscribe(ctx context.Context, raw string) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRegex.MatchString(email) {
		return false, ErrInvalidEmail
	}

	_, created, err := s.subscribers.AddSubscriber(ctx, email)
	if err != nil {
		return false, fmt.Errorf("сохранение подписчика: %w", err)
	}
	if !created {
		return false, nil
	}

	if s.queue != nil {
		job := domain.WelcomeJob{
			ID:          uuid.NewString(),
			Email:       email,
			RequestedAt: time.Now().UTC(),
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("subscribe: не удалось поставить задачу приветствия")
		}
	}
	return true, nil
}
