package subscribe

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
)

type stubSubscribers struct {
	existing map[string]bool
	addErr   error
}

func (s *stubSubscribers) AddSubscriber(_ context.Context, email string) (domain.Subscriber, bool, error) {
	if s.addErr != nil {
		return domain.Subscriber{}, false, s.addErr
	}
	if s.existing[email] {
		return domain.Subscriber{Email: email}, false, nil
	}
	if s.existing == nil {
		s.existing = map[string]bool{}
	}
	s.existing[email] = true
	return domain.Subscriber{Email: email}, true, nil
}

func (s *stubSubscribers) ListSubscribers(context.Context) ([]domain.Subscriber, error) {
	return nil, nil
}

type stubQueue struct {
	jobs []domain.WelcomeJob
	err  error
}

func (q *stubQueue) Enqueue(_ context.Context, job domain.WelcomeJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *stubQueue) Pop(context.Context) (domain.WelcomeJob, error) {
	return domain.WelcomeJob{}, errors.New("не используется")
}

func TestSubscribeNewAddress(t *testing.T) {
	repo := &stubSubscribers{}
	queue := &stubQueue{}
	svc := NewService(repo, queue, zerolog.Nop())

	created, err := svc.Subscribe(context.Background(), "  New@Example.COM ")
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if !created {
		t.Fatalf("ожидали новую подписку")
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("ожидали одну задачу приветствия")
	}
	if queue.jobs[0].Email != "new@example.com" {
		t.Fatalf("адрес должен нормализоваться, получили %q", queue.jobs[0].Email)
	}
	if queue.jobs[0].ID == "" {
		t.Fatalf("задача должна получить идентификатор")
	}
}

func TestSubscribeDuplicate(t *testing.T) {
	repo := &stubSubscribers{existing: map[string]bool{"old@example.com": true}}
	queue := &stubQueue{}
	svc := NewService(repo, queue, zerolog.Nop())

	created, err := svc.Subscribe(context.Background(), "old@example.com")
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if created {
		t.Fatalf("повторная подписка не должна считаться новой")
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("для дубликата задача приветствия не ставится")
	}
}

func TestSubscribeInvalidAddress(t *testing.T) {
	svc := NewService(&stubSubscribers{}, &stubQueue{}, zerolog.Nop())
	for _, raw := range []string{"", "пример", "a@b", "a b@c.dj", "@c.dj"} {
		if _, err := svc.Subscribe(context.Background(), raw); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("%q: ожидали ErrInvalidEmail, получили %v", raw, err)
		}
	}
}

func TestSubscribeQueueFailureDoesNotBreakRegistration(t *testing.T) {
	repo := &stubSubscribers{}
	queue := &stubQueue{err: errors.New("redis недоступен")}
	svc := NewService(repo, queue, zerolog.Nop())

	created, err := svc.Subscribe(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("сбой очереди не должен ломать подписку: %v", err)
	}
	if !created {
		t.Fatalf("подписка должна состояться")
	}
}
