package countdowns

import (
	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/models"
)

type DeleteCmd struct {
	UID string `arg:"" help:"UID of the countdown to delete."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *DeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	if err := p.LoadCountdowns(bg); err != nil {
		return err
	}
	// Unknown uids go to the device as typed and fail there.
	uid, _ := models.ResolveUID(p.Snapshot().Countdowns, cmd.UID)
	return ctx.Report(p.Delete(bg, uid, ctx.ConfirmFor(cmd.Yes)))
}
