package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"atmo-monitor/internal/domain"
)

// FileStore хранит NotificationState в небольшом JSON-файле.
// Запись идёт через временный файл и rename, поэтому читатель никогда
// не увидит полузаписанное состояние.
type FileStore struct {
	path string
}

var _ domain.StateStore = (*FileStore)(nil)

// NewFileStore создаёт хранилище по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load возвращает сохранённое состояние. Отсутствующий или повреждённый файл —
// это «сервис ещё не работал»: возвращается состояние по умолчанию.
func (s *FileStore) Load() domain.NotificationState {
	def := domain.NotificationState{LastAlertLevel: domain.AlertNormal}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return def
	}
	var st domain.NotificationState
	if err := json.Unmarshal(data, &st); err != nil {
		return def
	}
	return st
}

// Save атомарно перезаписывает состояние целиком.
func (s *FileStore) Save(st domain.NotificationState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}
