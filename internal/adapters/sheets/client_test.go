package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"atmo-monitor/internal/domain"
)

func TestNotConfigured(t *testing.T) {
	client := NewClient(Config{})
	if err := client.AppendSubscriber(context.Background(), "a@b.dj"); !errors.Is(err, domain.ErrSheetNotConfigured) {
		t.Fatalf("ожидали ErrSheetNotConfigured, получили %v", err)
	}
	if _, err := client.ListEmails(context.Background()); !errors.Is(err, domain.ErrSheetNotConfigured) {
		t.Fatalf("ожидали ErrSheetNotConfigured, получили %v", err)
	}
}

func TestAppendSubscriber(t *testing.T) {
	var got appendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/subscribers" {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer секрет" {
			t.Errorf("неожиданный заголовок авторизации: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("не удалось разобрать тело: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "секрет"})
	if err := client.AppendSubscriber(context.Background(), "new@example.com"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Fatalf("неожиданный адрес: %q", got.Email)
	}
	if got.LoggedAt == "" {
		t.Fatalf("ожидали время регистрации")
	}
}

func TestListEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listResponse{Emails: []string{"a@b.dj", "  ", "c@d.dj"}})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	emails, err := client.ListEmails(context.Background())
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("ожидали 2 адреса, получили %d", len(emails))
	}
}

func TestListEmailsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.ListEmails(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку статуса")
	}
}
