package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

// Config задаёт SMTP-транспорт. Пустые User/Password означают, что почта
// не настроена: отправки молча пропускаются.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

// SMTP отправляет письма по одному соединению на отправку, STARTTLS обязательный.
type SMTP struct {
	cfg Config
}

var _ domain.Mailer = (*SMTP)(nil)

// New создаёт почтовый транспорт.
func New(cfg Config) *SMTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTP{cfg: cfg}
}

// Send доставляет письмо одному получателю: HTML-тело с текстовой альтернативой.
func (m *SMTP) Send(ctx context.Context, msg domain.MailMessage) error {
	if m.cfg.User == "" || m.cfg.Password == "" {
		return domain.ErrMailerNotConfigured
	}
	if !strings.Contains(msg.To, "@") {
		return fmt.Errorf("некорректный адрес: %s", msg.To)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	start := time.Now()
	err := m.deliver(ctx, addr, msg)
	metrics.ObserveNetworkRequest("smtp", "send", m.cfg.Host, start, err)
	if err != nil {
		return fmt.Errorf("отправка %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTP) deliver(ctx context.Context, addr string, msg domain.MailMessage) error {
	dialer := net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	// Общий предел на весь SMTP-диалог, чтобы зависший сервер не
	// останавливал рассылку.
	_ = conn.SetDeadline(time.Now().Add(m.cfg.Timeout))

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("handshake: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := client.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(buildMessage(m.cfg.User, msg)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}

const boundary = "atmo-monitor-alt"

// buildMessage собирает multipart/alternative: текстовая строка-заглушка
// и HTML-отчёт.
func buildMessage(from string, msg domain.MailMessage) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.TextBody + "\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTMLBody + "\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
