package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"atmo-monitor/internal/adapters/repo"
	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/config"
	"atmo-monitor/internal/infra/db"
	httpinfra "atmo-monitor/internal/infra/http"
	applog "atmo-monitor/internal/infra/log"
	"atmo-monitor/internal/infra/metrics"
	"atmo-monitor/internal/infra/queue"
	subscribeusecase "atmo-monitor/internal/usecase/subscribe"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.PGDSN == "" {
		logger.Fatal().Msg("api: не указан адрес БД (PG_DSN)")
	}
	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: нет подключения к БД")
	}
	defer pool.Close()

	var welcomeQueue domain.WelcomeQueue
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		welcomeQueue = queue.NewRedisWelcomeQueue(rdb, cfg.Queues.Welcome)
	} else {
		logger.Warn().Msg("api: redis не настроен, приветственные отчёты отключены")
	}

	subscription := subscribeusecase.NewService(
		repo.NewPostgres(pool),
		welcomeQueue,
		logger.With().Str("component", "subscribe").Logger(),
	)

	s := httpinfra.NewServer(logger.With().Str("component", "http").Logger())

	s.Router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	s.Router.Get("/api/layers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, domain.Layers)
	})

	s.Router.Post("/api/subscribe", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req subscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if _, err := subscription.Subscribe(r.Context(), req.Email); err != nil {
			if errors.Is(err, subscribeusecase.ErrInvalidEmail) {
				writeError(w, http.StatusBadRequest, "invalid email")
				return
			}
			logger.Error().Err(err).Msg("api: подписка не сохранена")
			writeError(w, http.StatusInternalServerError, "failed to subscribe")
			return
		}
		writeJSON(w, map[string]string{"status": "ok"})
	})

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")

	s.Run(ctx, fmt.Sprintf(":%d", cfg.Port))
	logger.Info().Msg("api: остановка")
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}
