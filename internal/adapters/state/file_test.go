package state

import (
	"os"
	"path/filepath"
	"testing"

	"atmo-monitor/internal/domain"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "нет.json"))
	st := store.Load()
	if st.LastDaily != "" {
		t.Fatalf("ожидали пустую дату, получили %q", st.LastDaily)
	}
	if st.LastAlertLevel != domain.AlertNormal {
		t.Fatalf("ожидали NORMAL, получили %s", st.LastAlertLevel)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{обрезан"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := NewFileStore(path).Load()
	if st.LastDaily != "" || st.LastAlertLevel != domain.AlertNormal {
		t.Fatalf("повреждённый файл должен давать состояние по умолчанию, получили %+v", st)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path)

	want := domain.NotificationState{LastDaily: "2026-08-29", LastAlertLevel: domain.AlertEleve}
	if err := store.Save(want); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	got := store.Load()
	if got != want {
		t.Fatalf("ожидали %+v, получили %+v", want, got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "state.json"))
	if err := store.Save(domain.NotificationState{LastDaily: "2026-08-29"}); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		t.Fatalf("ожидали только state.json, получили %v", entries)
	}
}

func TestUnknownLevelInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	payload := `{"last_daily":"2026-08-28","last_alert_level":"ORANGE"}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	st := NewFileStore(path).Load()
	if st.LastAlertLevel != domain.AlertNormal {
		t.Fatalf("неизвестный уровень должен читаться как NORMAL, получили %s", st.LastAlertLevel)
	}
	if st.LastDaily != "2026-08-28" {
		t.Fatalf("дата должна сохраниться, получили %q", st.LastDaily)
	}
}
