package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/cli/countdowns"
	"github.com/julianstephens/countdownctl/internal/cli/display"
	"github.com/julianstephens/countdownctl/internal/cli/system"
	"github.com/julianstephens/countdownctl/internal/config"
	"github.com/julianstephens/countdownctl/internal/constants"
	apperrors "github.com/julianstephens/countdownctl/internal/errors"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"~/.config/countdownctl/config.yaml" env:"COUNTDOWNCTL_CONFIG"`
	Device  string `help:"Device base URL. Overrides device.url from the config." env:"COUNTDOWNCTL_DEVICE"`
	Debug   bool   `help:"Log debug output to stderr." env:"COUNTDOWNCTL_DEBUG"`

	Tui     system.TuiCmd        `cmd:"" help:"Launch the interactive admin panel." default:"1"`
	Status  display.StatusCmd    `cmd:"" help:"Show the device's network status."`
	List    countdowns.ListCmd   `cmd:"" help:"List all countdowns."`
	Add     countdowns.AddCmd    `cmd:"" help:"Add a countdown for a card."`
	Edit    countdowns.EditCmd   `cmd:"" help:"Edit an existing countdown."`
	Delete  countdowns.DeleteCmd `cmd:"" help:"Delete a countdown."`
	Scan    countdowns.ScanCmd   `cmd:"" help:"Read the UID of the card on the reader."`
	WiFi    display.WiFiCmd      `cmd:"" name:"wifi" help:"Show or change the device's WiFi settings."`
	Restart display.RestartCmd   `cmd:"" help:"Restart the device."`
	Emulate system.EmulateCmd    `cmd:"" help:"Run a local device emulator."`
	Keyring system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Doctor  system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Init    system.InitCmd       `cmd:"" help:"Write the config file and prepare the emulator store."`
	Migrate system.MigrateCmd    `cmd:"" help:"Run emulator store migrations."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Admin panel for the RFID countdown display"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ctx.Command()
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		// init rewrites a broken config, everything else needs a valid one.
		if command != "init" {
			apperrors.Fatal(err)
		}
		path, pathErr := utils.ExpandHome(CLI.Config)
		if pathErr != nil {
			apperrors.Fatalf("cannot resolve config path %s: %v", CLI.Config, pathErr)
		}
		cfg = config.Default()
		cfg.Path = path
	}
	if CLI.Device != "" {
		cfg.Device.URL = CLI.Device
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: filepath.Dir(cfg.Path),
		Console:   command == "emulate",
	}); err != nil {
		apperrors.Fatalf("failed to initialize logging in %s: %v", filepath.Dir(cfg.Path), err)
	}
	logger.Debug("starting", "command", command, "device", cfg.Device.URL, "config", cfg.Path)

	apperrors.Fatal(ctx.Run(cli.NewContext(cfg)))
}
