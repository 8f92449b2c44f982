package countdowns

import (
	"github.com/julianstephens/countdownctl/internal/cli"
)

// ScanCmd reads one card and prints its uid.
type ScanCmd struct{}

func (cmd *ScanCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	return ctx.Report(p.ScanCard(bg))
}
