package display

import (
	"errors"
	"fmt"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/keyring"
	"github.com/julianstephens/countdownctl/internal/models"
)

type WiFiCmd struct {
	Show WiFiShowCmd `cmd:"" help:"Show the WiFi network stored on the device." default:"1"`
	Set  WiFiSetCmd  `cmd:"" help:"Store new WiFi credentials and restart the device."`
}

type WiFiShowCmd struct{}

func (cmd *WiFiShowCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	cfg, err := client.WiFi(bg)
	if err != nil {
		return err
	}
	ssid := cfg.SSID
	if ssid == "" {
		ssid = constants.Placeholder
	}
	ctx.Printf("SSID:     %s\n", ssid)
	ctx.Printf("Passwort: %s\n", yesNo(cfg.HasPassword))
	ctx.Printf("AP Modus: %s\n", yesNo(cfg.APMode))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}

type WiFiSetCmd struct {
	SSID        string `name:"ssid" help:"Network name." required:""`
	Password    string `help:"Network password." xor:"password"`
	FromKeyring bool   `help:"Use the WiFi password stored with 'keyring set --entry wifi'." xor:"password"`
	Yes         bool   `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *WiFiSetCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	creds := models.WiFiCredentials{SSID: cmd.SSID, Password: cmd.Password}
	if cmd.FromKeyring {
		secret, err := keyring.Get(keyring.EntryWiFiPassword)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return errors.New("no WiFi password in keyring. Use 'countdownctl keyring set --entry wifi' to store one")
			}
			return fmt.Errorf("failed to read WiFi password from keyring: %w", err)
		}
		creds.Password = secret
	}

	return ctx.Report(p.SaveWiFi(bg, creds, ctx.ConfirmFor(cmd.Yes)))
}
