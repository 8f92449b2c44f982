// Package jsonfile stores the emulator state in the single JSON document
// the display firmware keeps in its flash filesystem, so a config.json
// pulled off a device can be served or imported as-is.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
)

type document struct {
	WiFi struct {
		SSID     string `json:"ssid"`
		Password string `json:"password"`
	} `json:"wifi"`
	Countdowns []models.Countdown `json:"countdowns"`
}

type Store struct {
	path string

	mu        sync.Mutex
	doc       *document
	updatedAt string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init loads the file, creating an empty document when it does not exist.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{Countdowns: []models.Countdown{}}
	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("emulator store %s not initialized, run 'countdownctl emulate' first", s.path)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Countdowns == nil {
		doc.Countdowns = []models.Countdown{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	return nil
}

func (s *Store) Close() error {
	return nil
}

// save writes the document through a temp file so a crash never leaves a
// truncated store behind. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *Store) index(uid string) int {
	for i, cd := range s.doc.Countdowns {
		if cd.UID == uid {
			return i
		}
	}
	return -1
}

func (s *Store) ListCountdowns() ([]models.Countdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Countdown, len(s.doc.Countdowns))
	copy(out, s.doc.Countdowns)
	return out, nil
}

func (s *Store) GetCountdown(uid string) (models.Countdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Countdown{}, err
	}
	i := s.index(uid)
	if i < 0 {
		return models.Countdown{}, storage.ErrNotFound
	}
	return s.doc.Countdowns[i], nil
}

func (s *Store) AddCountdown(cd models.Countdown) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if s.index(cd.UID) >= 0 {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
	}
	if len(s.doc.Countdowns) >= constants.MaxCountdowns {
		return storage.ErrLimitReached
	}
	s.doc.Countdowns = append(s.doc.Countdowns, cd)
	return s.save()
}

func (s *Store) UpdateCountdown(uid string, cd models.Countdown) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.index(uid)
	if i < 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, uid)
	}
	if cd.UID != uid && s.index(cd.UID) >= 0 {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
	}
	s.doc.Countdowns[i] = cd
	return s.save()
}

func (s *Store) DeleteCountdown(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.index(uid)
	if i < 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, uid)
	}
	s.doc.Countdowns = append(s.doc.Countdowns[:i], s.doc.Countdowns[i+1:]...)
	return s.save()
}

// GetWiFi returns the stored credentials. The file format has no
// timestamp, so UpdatedAt is only set for saves made by this process.
func (s *Store) GetWiFi() (storage.WiFiSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return storage.WiFiSettings{}, err
	}
	return storage.WiFiSettings{
		SSID:      s.doc.WiFi.SSID,
		Password:  s.doc.WiFi.Password,
		UpdatedAt: s.updatedAt,
	}, nil
}

func (s *Store) SaveWiFi(ssid, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.WiFi.SSID = ssid
	s.doc.WiFi.Password = password
	s.updatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.save()
}

func (s *Store) GetConfigPath() string {
	return s.path
}
