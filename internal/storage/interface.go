package storage

import (
	"errors"

	"github.com/julianstephens/countdownctl/internal/models"
)

var (
	// ErrNotFound is returned when no countdown has the requested uid.
	ErrNotFound = errors.New("countdown not found")
	// ErrDuplicateUID is returned when a uid is already taken.
	ErrDuplicateUID = errors.New("countdown uid already exists")
	// ErrLimitReached is returned when the store already holds MaxCountdowns records.
	ErrLimitReached = errors.New("countdown limit reached")
)

// WiFiSettings are the credentials the emulated device joins after a restart.
type WiFiSettings struct {
	SSID      string
	Password  string
	UpdatedAt string
}

// Provider persists the emulated device's countdowns and WiFi credentials.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Countdowns, in insertion order
	ListCountdowns() ([]models.Countdown, error)
	GetCountdown(uid string) (models.Countdown, error)
	AddCountdown(models.Countdown) error
	// UpdateCountdown replaces the record stored under uid, keeping its
	// position. The new record's UID becomes the key.
	UpdateCountdown(uid string, cd models.Countdown) error
	DeleteCountdown(uid string) error

	// WiFi
	GetWiFi() (WiFiSettings, error)
	SaveWiFi(ssid, password string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	// Migrate applies pending migrations to an opened store and returns
	// how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion returns the applied and the newest known version.
	SchemaVersion() (current, latest int, err error)
}
