package display

import (
	"github.com/julianstephens/countdownctl/internal/cli"
)

type RestartCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *RestartCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	return ctx.Report(p.Restart(bg, ctx.ConfirmFor(cmd.Yes)))
}
