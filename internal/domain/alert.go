package domain

// AlertLevel — уровень тревоги по пыли, от нормального к критическому.
type AlertLevel int

const (
	// AlertNormal — условия ясные, тревоги нет.
	AlertNormal AlertLevel = iota
	// AlertModere — пыль в воздухе, без угрозы.
	AlertModere
	// AlertEleve — плотная пылевая дымка.
	AlertEleve
	// AlertCritique — активная песчаная буря.
	AlertCritique
)

// String возвращает каноничное имя уровня (хранится в файле состояния).
func (l AlertLevel) String() string {
	switch l {
	case AlertModere:
		return "MODERE"
	case AlertEleve:
		return "ELEVE"
	case AlertCritique:
		return "CRITIQUE"
	default:
		return "NORMAL"
	}
}

// Color возвращает hex-цвет уровня для HTML-отчёта.
func (l AlertLevel) Color() string {
	switch l {
	case AlertModere:
		return "#f59e0b"
	case AlertEleve:
		return "#f97316"
	case AlertCritique:
		return "#ef4444"
	default:
		return "#10b981"
	}
}

// Text возвращает описание уровня для отчёта.
func (l AlertLevel) Text() string {
	switch l {
	case AlertModere:
		return "Poussière en suspension"
	case AlertEleve:
		return "Brume de sable dense"
	case AlertCritique:
		return "Tempête de sable active"
	default:
		return "Conditions claires"
	}
}

// MarshalText сериализует уровень как имя.
func (l AlertLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText разбирает имя уровня; неизвестное значение трактуется как NORMAL,
// чтобы повреждённый файл состояния не останавливал сервис.
func (l *AlertLevel) UnmarshalText(data []byte) error {
	*l = ParseAlertLevel(string(data))
	return nil
}

// ParseAlertLevel возвращает уровень по имени, NORMAL для неизвестных значений.
func ParseAlertLevel(name string) AlertLevel {
	switch name {
	case "MODERE":
		return AlertModere
	case "ELEVE":
		return AlertEleve
	case "CRITIQUE":
		return AlertCritique
	default:
		return AlertNormal
	}
}

// ClassifyDust сопоставляет концентрацию PM10 (мкг/м³) и скорость ветра (км/ч)
// уровню тревоги. Сравнения строгие: граничные значения относятся к менее
// тяжёлому уровню. Порядок проверок от тяжёлого к лёгкому, побеждает первая.
func ClassifyDust(pm10, windSpeed float64) AlertLevel {
	if pm10 > 200 && windSpeed > 40 {
		return AlertCritique
	}
	if pm10 > 100 && windSpeed > 25 {
		return AlertEleve
	}
	if pm10 > 50 {
		return AlertModere
	}
	return AlertNormal
}

// AQIBand — словесная оценка индекса качества воздуха с цветом для отчёта.
type AQIBand struct {
	Label string
	Color string
}

// AQIBandFor возвращает оценку для индекса по шкале US AQI.
func AQIBandFor(aqi float64) AQIBand {
	switch {
	case aqi <= 50:
		return AQIBand{Label: "Bon", Color: "#10b981"}
	case aqi <= 100:
		return AQIBand{Label: "Modéré", Color: "#f59e0b"}
	case aqi <= 150:
		return AQIBand{Label: "Sensible", Color: "#f97316"}
	case aqi <= 200:
		return AQIBand{Label: "Mauvais", Color: "#ef4444"}
	default:
		return AQIBand{Label: "Dangereux", Color: "#7c3aed"}
	}
}
