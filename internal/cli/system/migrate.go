package system

import (
	"fmt"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/emulator"
	"github.com/julianstephens/countdownctl/internal/storage"
)

// MigrateCmd applies pending schema migrations to an existing emulator store.
type MigrateCmd struct {
	Store string `help:"Emulator store. Defaults to emulator.store from the config."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	target := c.Store
	if target == "" {
		target = ctx.Config.Emulator.Store
	}

	store, err := emulator.NewStore(target)
	if err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load emulator store: %w", err)
	}
	defer store.Close()

	migrator, ok := store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("store %s does not support migrations", store.GetConfigPath())
	}

	count, err := migrator.Migrate(func(msg string) {
		ctx.Printf("%s\n", msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Printf("No migrations to apply. Store is up to date.\n")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
