package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/countdownctl/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the entry
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names one secret countdownctl keeps in the OS keyring.
type Entry string

const (
	// EntryDatabase holds the emulator's PostgreSQL connection string.
	EntryDatabase Entry = constants.DefaultKeyringUser
	// EntryWiFiPassword holds the password pushed with `wifi set --from-keyring`.
	EntryWiFiPassword Entry = "device-wifi-password"
)

// ParseEntry maps a short CLI name ("database", "wifi") to an Entry.
func ParseEntry(name string) (Entry, error) {
	switch name {
	case "database", "db", string(EntryDatabase):
		return EntryDatabase, nil
	case "wifi", string(EntryWiFiPassword):
		return EntryWiFiPassword, nil
	}
	return "", fmt.Errorf("unknown keyring entry %q (expected database or wifi)", name)
}

// Get retrieves a secret. Returns ErrNotFound if nothing is stored.
func Get(entry Entry) (string, error) {
	secret, err := keyring.Get(constants.AppName, string(entry))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores a secret, replacing any previous value.
func Set(entry Entry, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, string(entry), secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// Delete removes a secret.
func Delete(entry Entry) error {
	if err := keyring.Delete(constants.AppName, string(entry)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers at all.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
