package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

// Postgres реализует domain.SubscriberRepo на основе pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ domain.SubscriberRepo = (*Postgres)(nil)

// NewPostgres создаёт адаптер БД.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// AddSubscriber добавляет адрес, если его ещё нет. Дубликат не ошибка:
// возвращается существующая запись и created=false.
func (p *Postgres) AddSubscriber(ctx context.Context, email string) (domain.Subscriber, bool, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))

	var sub domain.Subscriber
	start := time.Now()
	err := p.pool.QueryRow(ctx, `
INSERT INTO subscribers (email, created_at)
VALUES ($1, now())
ON CONFLICT (email) DO NOTHING
RETURNING id, email, created_at
`, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	metrics.ObserveNetworkRequest("postgres", "subscribers_insert", "subscribers", start, nil)
	if err == nil {
		return sub, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscriber{}, false, err
	}

	// Конфликт: читаем существующую запись.
	start = time.Now()
	err = p.pool.QueryRow(ctx, `
SELECT id, email, created_at FROM subscribers WHERE email = $1
`, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	metrics.ObserveNetworkRequest("postgres", "subscribers_select", "subscribers", start, err)
	if err != nil {
		return domain.Subscriber{}, false, err
	}
	return sub, false, nil
}

// ListSubscribers возвращает всех подписчиков в порядке добавления.
func (p *Postgres) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, email, created_at FROM subscribers ORDER BY id
`)
	metrics.ObserveNetworkRequest("postgres", "subscribers_list", "subscribers", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
