package emulator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/countdownctl/internal/keyring"
	"github.com/julianstephens/countdownctl/internal/storage"
	"github.com/julianstephens/countdownctl/internal/storage/jsonfile"
	"github.com/julianstephens/countdownctl/internal/storage/postgres"
	"github.com/julianstephens/countdownctl/internal/storage/sqlite"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// StoreKeyring selects the PostgreSQL connection string saved in the OS keyring.
const StoreKeyring = "keyring"

// IsPostgresTarget reports whether target names a PostgreSQL database
// rather than a sqlite file.
func IsPostgresTarget(target string) bool {
	return strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://") ||
		strings.Contains(target, "host=") ||
		strings.Contains(target, "dbname=")
}

// IsJSONTarget reports whether target is a firmware-format config.json.
func IsJSONTarget(target string) bool {
	return strings.EqualFold(filepath.Ext(target), ".json")
}

// NewStore builds the store for target without opening it. target is a
// sqlite path or a .json file (~ expanded), a PostgreSQL URL or DSN, or "keyring".
func NewStore(target string) (storage.Provider, error) {
	fromKeyring := target == StoreKeyring
	if fromKeyring {
		connStr, err := keyring.Get(keyring.EntryDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to read emulator database from keyring: %w", err)
		}
		target = connStr
	}

	if IsPostgresTarget(target) {
		// The keyring is encrypted, so a password stored there is accepted.
		if _, err := postgres.ValidateConnString(target); err != nil &&
			!(fromKeyring && errors.Is(err, postgres.ErrEmbeddedCredentials)) {
			return nil, err
		}
		return postgres.New(target), nil
	}

	path, err := utils.ExpandHome(target)
	if err != nil {
		return nil, err
	}
	if IsJSONTarget(path) {
		return jsonfile.NewStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// OpenStore builds and initializes the store for target.
func OpenStore(target string) (storage.Provider, error) {
	store, err := NewStore(target)
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize emulator store: %w", err)
	}
	return store, nil
}
