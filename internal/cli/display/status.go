package display

import (
	"github.com/julianstephens/countdownctl/internal/cli"
)

type StatusCmd struct{}

func (cmd *StatusCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	// The placeholders are printed on failure, like the panel shows them.
	loadErr := p.LoadStatus(bg)
	view := p.Snapshot().StatusView()
	ctx.Printf("Modus: %s\nIP:    %s\nSSID:  %s\n", view.Mode, view.IP, view.SSID)
	return loadErr
}
