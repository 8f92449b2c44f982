package system

import (
	"fmt"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/emulator"
	"github.com/julianstephens/countdownctl/internal/logger"
)

// EmulateCmd serves the device API locally so the panel can be used
// without hardware.
type EmulateCmd struct {
	Listen   string   `help:"Address to listen on. Defaults to emulator.listen from the config."`
	Store    string   `help:"SQLite path, PostgreSQL URL, or 'keyring'. Defaults to emulator.store from the config."`
	Card     []string `help:"Card UID to present to the reader at startup. Repeatable."`
	ClientIP string   `name:"client-ip" help:"Address reported in WiFi client mode." default:"127.0.0.1"`
}

func (c *EmulateCmd) Run(ctx *cli.Context) error {
	listen := c.Listen
	if listen == "" {
		listen = ctx.Config.Emulator.Listen
	}
	target := c.Store
	if target == "" {
		target = ctx.Config.Emulator.Store
	}

	store, err := emulator.OpenStore(target)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := emulator.New(store, emulator.WithClientIP(c.ClientIP))
	if err != nil {
		return fmt.Errorf("failed to boot emulator: %w", err)
	}
	for _, uid := range c.Card {
		srv.Reader().Present(uid)
	}

	bg, cancel := cli.Signals()
	defer cancel()

	logger.Info("starting emulator", "listen", listen, "store", store.GetConfigPath(), "cards", len(c.Card))
	ctx.Printf("Emulator läuft auf http://%s (Strg+C zum Beenden)\n", listen)
	return srv.ListenAndServe(bg, listen)
}
