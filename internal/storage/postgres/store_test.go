package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasParam(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		key     string
		want    bool
	}{
		{name: "url query", connStr: "postgres://countdown@db:5432/emulator?sslmode=disable", key: "sslmode", want: true},
		{name: "url query any case", connStr: "postgres://countdown@db/emulator?SSLMODE=require", key: "sslmode", want: true},
		{name: "url without key", connStr: "postgres://countdown@db/emulator", key: "sslmode", want: false},
		{name: "dsn key", connStr: "host=db dbname=emulator search_path=display", key: "search_path", want: true},
		{name: "dsn value is not a key", connStr: "host=db password=search_path_1", key: "search_path", want: false},
		{name: "empty", connStr: "", key: "search_path", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasParam(tt.connStr, tt.key))
		})
	}
}

// The emulator refuses connection strings with a password unless they
// came out of the keyring, so only these outcomes matter.
func TestValidateConnString(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		wantErr error
	}{
		{name: "url", connStr: "postgres://countdown@db:5432/emulator?sslmode=disable"},
		{name: "postgresql scheme", connStr: "postgresql://countdown@db/emulator"},
		{name: "dsn", connStr: "host=db user=countdown dbname=emulator"},
		{name: "url password", connStr: "postgres://countdown:geheim@db/emulator", wantErr: ErrEmbeddedCredentials},
		{name: "dsn password", connStr: "host=db user=countdown password=geheim", wantErr: ErrEmbeddedCredentials},
		{name: "blank", connStr: "  ", wantErr: ErrInvalidConnectionString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := ValidateConnString(tt.connStr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, valid)
				return
			}
			assert.False(t, valid)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestNew_SetsSearchPath(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{
			name:    "url gets the app schema",
			connStr: "postgres://countdown@db:5432/emulator?sslmode=disable",
			want:    "postgres://countdown@db:5432/emulator?search_path=countdownctl&sslmode=disable",
		},
		{
			name:    "url keeps explicit schema",
			connStr: "postgres://countdown@db/emulator?search_path=public",
			want:    "postgres://countdown@db/emulator?search_path=public",
		},
		{
			name:    "dsn gets the app schema",
			connStr: "host=db dbname=emulator ",
			want:    "host=db dbname=emulator search_path=countdownctl",
		},
		{
			name:    "dsn keeps explicit schema",
			connStr: "host=db Search_Path=display",
			want:    "host=db Search_Path=display",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.connStr).connStr)
		})
	}
}
