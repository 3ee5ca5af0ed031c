package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

// Client пишет и читает журнал подписчиков во внешней таблице через
// HTTP-мост (Apps Script поверх Google Sheets). Пустой BaseURL означает,
// что интеграция выключена.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

var _ domain.SheetLog = (*Client)(nil)

// Config задаёт адрес моста и токен доступа.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewClient создаёт клиента таблицы.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

type appendRequest struct {
	Email    string `json:"email"`
	LoggedAt string `json:"logged_at"`
}

type listResponse struct {
	Emails []string `json:"emails"`
}

// AppendSubscriber дописывает строку с адресом и временем регистрации.
func (c *Client) AppendSubscriber(ctx context.Context, email string) error {
	if c.baseURL == "" {
		return domain.ErrSheetNotConfigured
	}
	payload, err := json.Marshal(appendRequest{
		Email:    email,
		LoggedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/subscribers", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyAuth(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveNetworkRequest("sheets", "append", "subscribers", start, err)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("append failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

// ListEmails возвращает все адреса из таблицы.
func (c *Client) ListEmails(ctx context.Context) ([]string, error) {
	if c.baseURL == "" {
		return nil, domain.ErrSheetNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/subscribers", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.applyAuth(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveNetworkRequest("sheets", "list", "subscribers", start, err)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var parsed listResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	emails := make([]string, 0, len(parsed.Emails))
	for _, email := range parsed.Emails {
		trimmed := strings.TrimSpace(email)
		if trimmed == "" {
			continue
		}
		emails = append(emails, trimmed)
	}
	return emails, nil
}

func (c *Client) applyAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
