package domain

import "time"

// Reading представляет один снимок условий: погода и качество воздуха,
// полученные за один цикл опроса. Создаётся заново каждый цикл и не изменяется.
type Reading struct {
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	WindGusts   float64
	UVIndex     float64
	WeatherCode int
	PM25        float64
	PM10        float64
	AQI         float64
	Dust        float64
	ObservedAt  time.Time
}

// WeatherLabel возвращает подпись погоды для отчёта.
func (r Reading) WeatherLabel() string {
	if r.WeatherCode == 0 {
		return "Ciel Dégagé"
	}
	return "Nuageux"
}

// Subscriber описывает подписчика рассылки. Только адрес, без настроек.
type Subscriber struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}

// NotificationState — единственная долгоживущая запись сервиса уведомлений.
// Хранит дату последнего ежедневного отчёта и последний разосланный уровень
// тревоги; используется для дедупликации между перезапусками.
type NotificationState struct {
	LastDaily      string     `json:"last_daily"`
	LastAlertLevel AlertLevel `json:"last_alert_level"`
}

// Layer описывает слой визуализации CAMS для фронтенда.
type Layer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Layer       string `json:"layer"`
	Style       string `json:"style"`
	LegendURL   string `json:"legend_url"`
	Description string `json:"description"`
}
