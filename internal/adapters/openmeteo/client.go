package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

const (
	defaultWeatherBaseURL = "https://api.open-meteo.com/v1"
	defaultAirBaseURL     = "https://air-quality-api.open-meteo.com/v1"

	weatherFields = "temperature_2m,relative_humidity_2m,apparent_temperature,wind_speed_10m,wind_direction_10m,wind_gusts_10m,uv_index,weather_code"
	airFields     = "pm2_5,pm10,us_aqi,dust"
)

// Config задаёт координаты станции и адреса Open-Meteo.
type Config struct {
	Latitude       float64
	Longitude      float64
	WeatherBaseURL string
	AirBaseURL     string
	Timeout        time.Duration
}

// Client выполняет запросы к Open-Meteo: прогноз погоды и качество воздуха.
type Client struct {
	http       *http.Client
	weatherURL string
	airURL     string
	lat        float64
	lon        float64
}

var _ domain.Sampler = (*Client)(nil)

// NewClient создаёт клиента Open-Meteo.
func NewClient(cfg Config) *Client {
	weatherBase := cfg.WeatherBaseURL
	if weatherBase == "" {
		weatherBase = defaultWeatherBaseURL
	}
	airBase := cfg.AirBaseURL
	if airBase == "" {
		airBase = defaultAirBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		weatherURL: strings.TrimRight(weatherBase, "/") + "/forecast",
		airURL:     strings.TrimRight(airBase, "/") + "/air-quality",
		lat:        cfg.Latitude,
		lon:        cfg.Longitude,
	}
}

type weatherCurrent struct {
	Temperature float64 `json:"temperature_2m"`
	Humidity    float64 `json:"relative_humidity_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	WindGusts   float64 `json:"wind_gusts_10m"`
	UVIndex     float64 `json:"uv_index"`
	WeatherCode int     `json:"weather_code"`
}

type airCurrent struct {
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	AQI  float64 `json:"us_aqi"`
	Dust float64 `json:"dust"`
}

// Sample запрашивает погоду и качество воздуха параллельно. Если хотя бы один
// из запросов не вернул разборчивый ответ, снимка нет целиком.
func (c *Client) Sample(ctx context.Context) (domain.Reading, error) {
	var (
		wg      sync.WaitGroup
		weather weatherCurrent
		air     airCurrent
		wErr    error
		aErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		wErr = c.fetchCurrent(ctx, "forecast", c.weatherURL, weatherFields, &weather)
	}()
	go func() {
		defer wg.Done()
		aErr = c.fetchCurrent(ctx, "air_quality", c.airURL, airFields, &air)
	}()
	wg.Wait()

	if wErr != nil {
		return domain.Reading{}, fmt.Errorf("погода: %w", wErr)
	}
	if aErr != nil {
		return domain.Reading{}, fmt.Errorf("качество воздуха: %w", aErr)
	}

	return domain.Reading{
		Temperature: weather.Temperature,
		Humidity:    weather.Humidity,
		WindSpeed:   weather.WindSpeed,
		WindGusts:   weather.WindGusts,
		UVIndex:     weather.UVIndex,
		WeatherCode: weather.WeatherCode,
		PM25:        air.PM25,
		PM10:        air.PM10,
		AQI:         air.AQI,
		Dust:        air.Dust,
		ObservedAt:  time.Now().UTC(),
	}, nil
}

func (c *Client) fetchCurrent(ctx context.Context, operation, endpoint, fields string, out any) error {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(c.lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(c.lon, 'f', -1, 64))
	query.Set("current", fields)
	query.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return err
	}

	var envelope struct {
		Current json.RawMessage `json:"current"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Current) == 0 {
		err = fmt.Errorf("response has no current block")
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return err
	}
	if err := json.Unmarshal(envelope.Current, out); err != nil {
		metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, err)
		return fmt.Errorf("decode current: %w", err)
	}
	metrics.ObserveNetworkRequest("open_meteo", operation, endpoint, start, nil)
	return nil
}
