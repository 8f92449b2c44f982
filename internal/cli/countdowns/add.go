package countdowns

import (
	"context"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/panel"
)

type AddCmd struct {
	UID      string `name:"uid" help:"Card UID. Use --scan to read it from the device."`
	Name     string `help:"Countdown name." required:""`
	Date     string `help:"Target date (YYYY-MM-DD)." required:""`
	Inactive bool   `help:"Create the countdown inactive."`
	Scan     bool   `help:"Scan a card on the device for the UID."`
}

func (cmd *AddCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	p.OpenAdd()
	form := panel.Form{
		UID:        cmd.UID,
		Name:       cmd.Name,
		TargetDate: cmd.Date,
		Active:     !cmd.Inactive,
	}
	if cmd.Scan {
		if form, err = scanInto(bg, ctx, p, form); err != nil {
			return err
		}
	}
	return ctx.Report(p.Submit(bg, form))
}

// scanInto reads a card and returns form with its uid.
func scanInto(bg context.Context, ctx *cli.Context, p *panel.Controller, form panel.Form) (panel.Form, error) {
	ctx.Printf("Karte an den Leser halten...\n")
	p.UpdateForm(form)
	n, err := p.ScanCard(bg)
	ctx.PrintNotice(n)
	if err != nil {
		return form, err
	}
	form.UID = p.Snapshot().Form.UID
	return form, nil
}
