package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
)

type fakeMailer struct {
	mu     sync.Mutex
	sent   []domain.MailMessage
	failTo map[string]error
}

func (f *fakeMailer) Send(_ context.Context, msg domain.MailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failTo[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func sampleReading() domain.Reading {
	return domain.Reading{
		Temperature: 36.4,
		Humidity:    44,
		WindSpeed:   31.2,
		WindGusts:   47.8,
		UVIndex:     8.4,
		PM10:        130,
		AQI:         131,
	}
}

func TestBroadcastDeliversToAll(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, zerolog.Nop())

	emails := []string{"a@dj.dj", "b@dj.dj", "c@dj.dj"}
	sent := svc.Broadcast(context.Background(), emails, sampleReading(), domain.AlertEleve, true)
	if sent != 3 {
		t.Fatalf("ожидали 3 доставки, получили %d", sent)
	}
	if len(mailer.sent) != 3 {
		t.Fatalf("ожидали 3 письма, получили %d", len(mailer.sent))
	}
	if mailer.sent[0].Subject != "[ALERTE] Rapport Environnemental Djibouti" {
		t.Fatalf("неожиданная тема: %q", mailer.sent[0].Subject)
	}
}

func TestBroadcastSurvivesOneFailure(t *testing.T) {
	mailer := &fakeMailer{failTo: map[string]error{"b@dj.dj": errors.New("mailbox unavailable")}}
	svc := NewService(mailer, zerolog.Nop())

	sent := svc.Broadcast(context.Background(), []string{"a@dj.dj", "b@dj.dj", "c@dj.dj"}, sampleReading(), domain.AlertNormal, false)
	if sent != 2 {
		t.Fatalf("ожидали 2 доставки, получили %d", sent)
	}
	for _, msg := range mailer.sent {
		if msg.To == "b@dj.dj" {
			t.Fatalf("отказавший адрес не должен быть в доставленных")
		}
	}
}

func TestBroadcastNotConfigured(t *testing.T) {
	mailer := &fakeMailer{failTo: map[string]error{
		"a@dj.dj": domain.ErrMailerNotConfigured,
		"b@dj.dj": domain.ErrMailerNotConfigured,
	}}
	svc := NewService(mailer, zerolog.Nop())

	sent := svc.Broadcast(context.Background(), []string{"a@dj.dj", "b@dj.dj"}, sampleReading(), domain.AlertNormal, false)
	if sent != 0 {
		t.Fatalf("без SMTP ничего не доставляется, получили %d", sent)
	}
}

func TestSendToRendersReport(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, zerolog.Nop())

	if err := svc.SendTo(context.Background(), "new@dj.dj", sampleReading(), domain.AlertModere, false); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("ожидали 1 письмо")
	}
	msg := mailer.sent[0]
	if msg.TextBody != PlainFallback {
		t.Fatalf("ожидали текстовую заглушку")
	}
	if !strings.Contains(msg.HTMLBody, "ALERTE MODERE") {
		t.Fatalf("в HTML нет баннера тревоги")
	}
	if !strings.Contains(msg.HTMLBody, "Poussière en suspension") {
		t.Fatalf("в HTML нет описания уровня")
	}
}

func TestRenderHidesBannerAtNormal(t *testing.T) {
	html, err := Render(sampleReading(), domain.AlertNormal)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if strings.Contains(html, "ALERTE") {
		t.Fatalf("при NORMAL баннер тревоги не показывается")
	}
	if !strings.Contains(html, "131 - Sensible") {
		t.Fatalf("ожидали оценку AQI в отчёте:\n%s", html)
	}
	if !strings.Contains(html, "31 / 48 km/h") {
		t.Fatalf("ожидали округлённые значения ветра и порывов")
	}
}
