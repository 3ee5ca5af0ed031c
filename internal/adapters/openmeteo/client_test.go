package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const weatherBody = `{"current":{"temperature_2m":34.5,"relative_humidity_2m":48,"wind_speed_10m":27.4,"wind_gusts_10m":41.0,"uv_index":8.2,"weather_code":0}}`
const airBody = `{"current":{"pm2_5":18.1,"pm10":112.6,"us_aqi":131,"dust":95.0}}`

func newTestClient(t *testing.T, weatherHandler, airHandler http.HandlerFunc) *Client {
	t.Helper()
	weatherSrv := httptest.NewServer(weatherHandler)
	t.Cleanup(weatherSrv.Close)
	airSrv := httptest.NewServer(airHandler)
	t.Cleanup(airSrv.Close)
	return NewClient(Config{
		Latitude:       11.5884,
		Longitude:      43.1456,
		WeatherBaseURL: weatherSrv.URL,
		AirBaseURL:     airSrv.URL,
	})
}

func TestSample(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("latitude"); got != "11.5884" {
				t.Errorf("неожиданная широта: %q", got)
			}
			if got := r.URL.Query().Get("current"); got == "" {
				t.Errorf("ожидали параметр current")
			}
			_, _ = w.Write([]byte(weatherBody))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(airBody))
		},
	)

	reading, err := client.Sample(context.Background())
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if reading.Temperature != 34.5 {
		t.Fatalf("неожиданная температура: %v", reading.Temperature)
	}
	if reading.PM10 != 112.6 {
		t.Fatalf("неожиданный PM10: %v", reading.PM10)
	}
	if reading.AQI != 131 {
		t.Fatalf("неожиданный AQI: %v", reading.AQI)
	}
	if reading.WeatherLabel() != "Ciel Dégagé" {
		t.Fatalf("неожиданная подпись погоды: %q", reading.WeatherLabel())
	}
	if reading.ObservedAt.IsZero() {
		t.Fatalf("ожидали время снимка")
	}
}

func TestSampleFailsWhenAirQualityDown(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(weatherBody))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	)

	if _, err := client.Sample(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку: частичного снимка быть не должно")
	}
}

func TestSampleFailsOnGarbage(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`не json`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(airBody))
		},
	)

	if _, err := client.Sample(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку разбора")
	}
}

func TestSampleFailsWithoutCurrentBlock(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"latitude":11.5884}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(airBody))
		},
	)

	if _, err := client.Sample(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку: нет блока current")
	}
}
