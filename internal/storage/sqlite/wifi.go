package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/countdownctl/internal/storage"
)

// GetWiFi returns the stored credentials, or zero settings when none were saved.
func (s *Store) GetWiFi() (storage.WiFiSettings, error) {
	var w storage.WiFiSettings
	err := s.db.QueryRow("SELECT ssid, password, updated_at FROM wifi WHERE id = 1").Scan(&w.SSID, &w.Password, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.WiFiSettings{}, nil
	}
	return w, err
}

func (s *Store) SaveWiFi(ssid, password string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO wifi (id, ssid, password, updated_at) VALUES (1, ?, ?, ?)",
		ssid, password, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
