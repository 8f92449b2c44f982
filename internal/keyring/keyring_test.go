package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGet(t *testing.T) {
	gokeyring.MockInit()

	const dsn = "postgres://countdown@localhost:5432/emulator?sslmode=disable"
	if err := Set(EntryDatabase, dsn); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Set(EntryWiFiPassword, "hunter2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := Get(EntryDatabase)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != dsn {
		t.Errorf("Get(EntryDatabase) = %q, want %q", got, dsn)
	}

	got, err = Get(EntryWiFiPassword)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Get(EntryWiFiPassword) = %q, want hunter2", got)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(EntryDatabase, ""); err == nil {
		t.Error("Set() with empty secret should return an error")
	}
}

func TestGetNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = Delete(EntryWiFiPassword)

	if _, err := Get(EntryWiFiPassword); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(EntryDatabase, "host=localhost"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Delete(EntryDatabase); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := Delete(EntryDatabase); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with the mock keyring")
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		in      string
		want    Entry
		wantErr bool
	}{
		{in: "database", want: EntryDatabase},
		{in: "db", want: EntryDatabase},
		{in: "wifi", want: EntryWiFiPassword},
		{in: "emulator-database-connection", want: EntryDatabase},
		{in: "tokens", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntry(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntry(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEntry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
