package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/config"
	"github.com/julianstephens/countdownctl/internal/emulator"
	"github.com/julianstephens/countdownctl/internal/storage"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// InitCmd writes the config file and optionally prepares the emulator store.
type InitCmd struct {
	Force    bool   `help:"Overwrite an existing config file and reset the emulator store."`
	Device   string `help:"Device base URL to write into the config."`
	Emulator bool   `help:"Also initialize the emulator store."`
	Store    string `help:"Emulator store to initialize. Defaults to emulator.store from the config."`
	Source   string `help:"Emulator store (path, connection string, or 'keyring') to copy countdowns and WiFi settings from. Implies --emulator."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	path := cfg.Path
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing config: %w", err)
	}

	if c.Device != "" {
		cfg.Device.URL = c.Device
	}
	if c.Store != "" {
		cfg.Emulator.Store = c.Store
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ctx.Printf("Wrote config to: %s\n", path)

	if !c.Emulator && c.Source == "" {
		return nil
	}

	target := cfg.Emulator.Store
	if c.Force {
		if err := c.resetStore(ctx, target); err != nil {
			return err
		}
	}

	store, err := emulator.OpenStore(target)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx.Printf("Initialized emulator store at: %s\n", store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, store); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("Copy completed successfully!\n")
	}
	return nil
}

// resetStore deletes an existing sqlite store. PostgreSQL stores are
// left alone.
func (c *InitCmd) resetStore(ctx *cli.Context, target string) error {
	if emulator.IsPostgresTarget(target) || target == emulator.StoreKeyring {
		return nil
	}
	dbPath, err := utils.ExpandHome(target)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}

	// Don't delete the store we are about to copy from.
	if c.Source != "" {
		source, err := utils.ExpandHome(c.Source)
		if err == nil {
			if abs, err := filepath.Abs(source); err == nil && abs == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
	}

	if err := os.Remove(dbPath); err == nil {
		ctx.Printf("Deleted existing emulator store at: %s\n", dbPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete existing emulator store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context, dest storage.Provider) error {
	source, err := emulator.NewStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	ctx.Printf("  Copying countdowns...\n")
	countdowns, err := source.ListCountdowns()
	if err != nil {
		return fmt.Errorf("failed to get countdowns from source: %w", err)
	}
	copied := 0
	for _, cd := range countdowns {
		err := dest.AddCountdown(cd)
		if errors.Is(err, storage.ErrDuplicateUID) {
			ctx.Printf("    Skipped %s (already present)\n", cd.UID)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to add countdown %s: %w", cd.UID, err)
		}
		copied++
	}
	ctx.Printf("    Copied %d countdowns\n", copied)

	ctx.Printf("  Copying WiFi settings...\n")
	wifi, err := source.GetWiFi()
	if err != nil {
		return fmt.Errorf("failed to get WiFi settings from source: %w", err)
	}
	if wifi.SSID == "" {
		ctx.Printf("    No WiFi settings stored\n")
		return nil
	}
	if err := dest.SaveWiFi(wifi.SSID, wifi.Password); err != nil {
		return fmt.Errorf("failed to save WiFi settings to destination: %w", err)
	}
	ctx.Printf("    Copied WiFi settings for %s\n", wifi.SSID)
	return nil
}
