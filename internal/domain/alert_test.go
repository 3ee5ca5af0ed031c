package domain

import "testing"

func TestClassifyDustBoundaries(t *testing.T) {
	cases := []struct {
		pm10 float64
		wind float64
		want AlertLevel
	}{
		{0, 0, AlertNormal},
		{50, 0, AlertNormal},
		{50.01, 0, AlertModere},
		{100, 25, AlertModere},
		{100.01, 25.01, AlertEleve},
		{200, 40, AlertEleve},
		{200.01, 40.01, AlertCritique},
		{300, 10, AlertModere},
		{150, 60, AlertEleve},
	}
	for _, tc := range cases {
		got := ClassifyDust(tc.pm10, tc.wind)
		if got != tc.want {
			t.Fatalf("ClassifyDust(%v, %v): ожидали %s, получили %s", tc.pm10, tc.wind, tc.want, got)
		}
	}
}

func TestParseAlertLevelRoundTrip(t *testing.T) {
	for _, level := range []AlertLevel{AlertNormal, AlertModere, AlertEleve, AlertCritique} {
		if got := ParseAlertLevel(level.String()); got != level {
			t.Fatalf("ожидали %s, получили %s", level, got)
		}
	}
	if got := ParseAlertLevel("мусор"); got != AlertNormal {
		t.Fatalf("неизвестный уровень должен быть NORMAL, получили %s", got)
	}
}

func TestAQIBandFor(t *testing.T) {
	cases := []struct {
		aqi  float64
		want string
	}{
		{10, "Bon"},
		{50, "Bon"},
		{51, "Modéré"},
		{150, "Sensible"},
		{200, "Mauvais"},
		{420, "Dangereux"},
	}
	for _, tc := range cases {
		if got := AQIBandFor(tc.aqi); got.Label != tc.want {
			t.Fatalf("AQIBandFor(%v): ожидали %q, получили %q", tc.aqi, tc.want, got.Label)
		}
	}
}

func TestWeatherLabel(t *testing.T) {
	if got := (Reading{WeatherCode: 0}).WeatherLabel(); got != "Ciel Dégagé" {
		t.Fatalf("неожиданная подпись: %q", got)
	}
	if got := (Reading{WeatherCode: 3}).WeatherLabel(); got != "Nuageux" {
		t.Fatalf("неожиданная подпись: %q", got)
	}
}
