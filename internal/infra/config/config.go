package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов. Загружается один раз на старте
// процесса и передаётся явно: никаких обращений к окружению из рабочего цикла.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"Africa/Djibouti"`
	Port   int    `envconfig:"PORT" default:"8001"`

	Station struct {
		Latitude  float64 `envconfig:"STATION_LAT" default:"11.5884"`
		Longitude float64 `envconfig:"STATION_LON" default:"43.1456"`
	} `envconfig:""`

	Monitor struct {
		Interval  time.Duration `envconfig:"MONITOR_INTERVAL" default:"30m"`
		StateFile string        `envconfig:"MONITOR_STATE_FILE" default:"notification_state.json"`
	} `envconfig:""`

	OpenMeteo struct {
		WeatherBaseURL string        `envconfig:"OPENMETEO_WEATHER_URL" default:"https://api.open-meteo.com/v1"`
		AirBaseURL     string        `envconfig:"OPENMETEO_AIR_URL" default:"https://air-quality-api.open-meteo.com/v1"`
		Timeout        time.Duration `envconfig:"OPENMETEO_TIMEOUT" default:"10s"`
	} `envconfig:""`

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		User     string `envconfig:"SMTP_USER"`
		Password string `envconfig:"SMTP_PASSWORD"`
	} `envconfig:""`

	Sheet struct {
		BaseURL string        `envconfig:"SHEET_BRIDGE_URL"`
		Token   string        `envconfig:"SHEET_BRIDGE_TOKEN"`
		Timeout time.Duration `envconfig:"SHEET_BRIDGE_TIMEOUT" default:"10s"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Queues struct {
		Welcome string `envconfig:"WELCOME_QUEUE_KEY" default:"welcome_jobs"`
	} `envconfig:""`

	Ops struct {
		TelegramToken string `envconfig:"OPS_TG_BOT_TOKEN"`
		TelegramChat  int64  `envconfig:"OPS_TG_CHAT_ID"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
