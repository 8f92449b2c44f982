package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/emulator"
	"github.com/julianstephens/countdownctl/internal/keyring"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
	"github.com/julianstephens/countdownctl/internal/utils"
	"github.com/julianstephens/countdownctl/internal/validation"
)

// skipError marks a check that did not apply.
type skipError struct{ reason string }

func (e *skipError) Error() string { return e.reason }

func skip(reason string) error { return &skipError{reason} }

type DoctorCmd struct {
	Timeout time.Duration `help:"Time allowed for each device request." default:"5s"`
	Store   string        `help:"Emulator store to inspect. Defaults to emulator.store from the config."`
	Fix     bool          `help:"Rekey countdowns whose UID is not in card format."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		var skipped *skipError
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case errors.As(err, &skipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, skipped.reason)
		case warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	// Check 1: config values
	report("Configuration", ctx.Config.Validate(), false)

	// Check 2: device reachable
	status, err := cmd.checkDeviceReachable(ctx)
	report("Device reachable", err, false)
	deviceReachable := err == nil
	if deviceReachable {
		mode := "WiFi client"
		if status.APMode {
			mode = "access point"
		}
		ctx.Printf("   %s mode, IP %s, SSID %s\n", mode, status.IP, status.SSID)
	}

	// Check 3: countdown list (only if the device answered)
	if deviceReachable {
		report("Countdown list", cmd.checkCountdowns(ctx), false)
	} else {
		report("Countdown list", skip("device not reachable"), false)
	}

	// Check 4: keyring (warning only)
	report("OS keyring", checkKeyring(), true)

	// Check 5: emulator store schema
	report("Emulator store", cmd.checkEmulatorStore(ctx), false)

	// Check 6: clock/timezone sanity
	report("Clock/timezone", checkClockTimezone(), false)

	ctx.Printf("\n")
	if hasError {
		ctx.Printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Printf("All diagnostics passed!\n")
	return nil
}

func (cmd *DoctorCmd) requestContext() (context.Context, context.CancelFunc) {
	if cmd.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), cmd.Timeout)
}

func (cmd *DoctorCmd) checkDeviceReachable(ctx *cli.Context) (models.Status, error) {
	client, err := ctx.Client()
	if err != nil {
		return models.Status{}, err
	}
	reqCtx, cancel := cmd.requestContext()
	defer cancel()

	status, err := client.Status(reqCtx)
	if err != nil {
		return models.Status{}, fmt.Errorf("%s: %w", client.BaseURL(), err)
	}
	return status, nil
}

func (cmd *DoctorCmd) checkCountdowns(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	reqCtx, cancel := cmd.requestContext()
	defer cancel()

	list, err := client.ListCountdowns(reqCtx)
	if err != nil {
		return fmt.Errorf("failed to list countdowns: %w", err)
	}
	result := validation.New().ValidateCountdowns(list)
	if result.HasConflicts() && cmd.Fix {
		actions := validation.AutoFixUIDs(result.Conflicts, list, func(uid string, cd models.Countdown) error {
			return client.UpdateCountdown(reqCtx, uid, cd)
		})
		for _, action := range actions {
			ctx.Printf("   fix: %s\n", action.Action)
		}
		if len(actions) > 0 {
			if list, err = client.ListCountdowns(reqCtx); err != nil {
				return fmt.Errorf("failed to reload countdowns: %w", err)
			}
			result = validation.New().ValidateCountdowns(list)
		}
	}
	if result.HasConflicts() {
		return errors.New(strings.TrimSuffix(result.FormatReport(), "\n"))
	}
	ctx.Printf("   %d of %d slots used\n", len(list), constants.MaxCountdowns)
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func (cmd *DoctorCmd) checkEmulatorStore(ctx *cli.Context) error {
	target := cmd.Store
	if target == "" {
		target = ctx.Config.Emulator.Store
	}

	if !emulator.IsPostgresTarget(target) && target != emulator.StoreKeyring {
		path, err := utils.ExpandHome(target)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return skip("no emulator store at " + path)
		}
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
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("store schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'countdownctl migrate')", current, latest)
	}
	return nil
}

func checkClockTimezone() error {
	// Day counts on the display depend on the local date.
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
