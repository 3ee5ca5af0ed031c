package report

import (
	"fmt"
	"html/template"
	"strings"

	"atmo-monitor/internal/domain"
)

// PlainFallback — текстовая альтернатива для клиентов без HTML.
const PlainFallback = "Veuillez activer l'affichage HTML pour voir ce rapport."

// Subject возвращает тему письма с префиксом типа рассылки.
func Subject(isAlert bool) string {
	prefix := "[DAILY] "
	if isAlert {
		prefix = "[ALERTE] "
	}
	return prefix + "Rapport Environnemental Djibouti"
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #020617; color: #f1f5f9; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background-color: #0f172a; border-radius: 24px; border: 1px solid rgba(56, 189, 248, 0.3); overflow: hidden; }
        .header { background: linear-gradient(135deg, #1e293b 0%, #0f172a 100%); padding: 30px; border-bottom: 1px solid rgba(255,255,255,0.05); }
        .flag { font-size: 24px; margin-bottom: 10px; }
        .title { font-size: 22px; font-weight: bold; margin: 0; color: #f1f5f9; }
        .subtitle { font-size: 14px; color: #38bdf8; text-transform: uppercase; letter-spacing: 1px; }
        .content { padding: 30px; }
        .hero-card { background-color: rgba(30, 41, 59, 0.5); border-radius: 20px; padding: 25px; margin-bottom: 20px; border: 1px solid rgba(255,255,255,0.05); }
        .temp-row { display: flex; align-items: center; justify-content: space-between; margin-bottom: 15px; }
        .temp-val { font-size: 48px; font-weight: bold; color: #f1f5f9; }
        .weather-desc { font-size: 18px; color: #94a3b8; }
        .stats-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 15px; }
        .stat-item { background: rgba(15, 23, 42, 0.4); padding: 15px; border-radius: 12px; border: 1px solid rgba(255,255,255,0.05); }
        .stat-label { font-size: 12px; color: #64748b; margin-bottom: 5px; }
        .stat-value { font-size: 16px; font-weight: 600; color: #38bdf8; }
        .alert-box { padding: 15px; border-radius: 12px; margin-bottom: 20px; font-weight: bold; text-align: center; border: 1px solid; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #475569; background: rgba(0,0,0,0.2); }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="flag">🇩🇯</div>
            <h1 class="title">RÉPUBLIQUE DE DJIBOUTI</h1>
            <div class="subtitle">Station Environnementale Nationale</div>
        </div>
        <div class="content">
            {{if .ShowAlert}}
            <div class="alert-box" style="border-color: {{.AlertColor}}; color: {{.AlertColor}};">
                ⚠️ ALERTE {{.AlertLevel}} : {{.AlertText}}
            </div>
            {{end}}

            <div class="hero-card">
                <div class="temp-row">
                    <div>
                        <div class="temp-val">{{.Temp}}°C</div>
                        <div class="weather-desc">{{.WeatherLabel}}</div>
                    </div>
                </div>
                <div class="stats-grid">
                    <div class="stat-item">
                        <div class="stat-label">AQI (Index Air)</div>
                        <div class="stat-value" style="color: {{.AQIColor}}">{{.AQI}} - {{.AQILabel}}</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-label">Humidité</div>
                        <div class="stat-value">{{.Humidity}}%</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-label">Vent / Rafales</div>
                        <div class="stat-value">{{.Wind}} / {{.Gusts}} km/h</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-label">Indice UV</div>
                        <div class="stat-value">{{.UV}}</div>
                    </div>
                </div>
            </div>

            <p style="font-size: 14px; color: #94a3b8;">
                Ce rapport a été généré automatiquement par Atmosphère 3D pour la ville de Djibouti.
            </p>
        </div>
        <div class="footer">
            &copy; 2026 Atmosphère 3D · Djibouti<br>
            Sources : Open-Meteo · ECMWF · CAMS
        </div>
    </div>
</body>
</html>`

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

type templateData struct {
	ShowAlert  bool
	AlertLevel string
	AlertColor template.CSS
	AlertText  string

	Temp         string
	WeatherLabel string
	AQI          string
	AQILabel     string
	AQIColor     template.CSS
	Humidity     string
	Wind         string
	Gusts        string
	UV           string
}

// Render строит HTML-тело отчёта по снимку условий и уровню тревоги.
func Render(reading domain.Reading, level domain.AlertLevel) (string, error) {
	band := domain.AQIBandFor(reading.AQI)
	data := templateData{
		ShowAlert:  level != domain.AlertNormal,
		AlertLevel: level.String(),
		AlertColor: template.CSS(level.Color()),
		AlertText:  level.Text(),

		Temp:         fmt.Sprintf("%.0f", reading.Temperature),
		WeatherLabel: reading.WeatherLabel(),
		AQI:          fmt.Sprintf("%.0f", reading.AQI),
		AQILabel:     band.Label,
		AQIColor:     template.CSS(band.Color),
		Humidity:     fmt.Sprintf("%.0f", reading.Humidity),
		Wind:         fmt.Sprintf("%.0f", reading.WindSpeed),
		Gusts:        fmt.Sprintf("%.0f", reading.WindGusts),
		UV:           fmt.Sprintf("%.1f", reading.UVIndex),
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("рендер отчёта: %w", err)
	}
	return b.String(), nil
}
