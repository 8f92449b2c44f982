package countdowns

import (
	"fmt"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/models"
)

type EditCmd struct {
	Current  string `arg:"" name:"uid" help:"UID of the countdown to edit."`
	UID      string `name:"new-uid" help:"New card UID."`
	Name     string `help:"New name."`
	Date     string `help:"New target date (YYYY-MM-DD)."`
	Active   bool   `help:"Activate the countdown." xor:"active"`
	Inactive bool   `help:"Deactivate the countdown." xor:"active"`
	Scan     bool   `help:"Scan a card on the device for the new UID."`
}

func (cmd *EditCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	if err := p.LoadCountdowns(bg); err != nil {
		return err
	}
	current, ok := models.ResolveUID(p.Snapshot().Countdowns, cmd.Current)
	if !ok || !p.OpenEdit(current) {
		return fmt.Errorf("countdown %s not found", current)
	}

	form := p.Snapshot().Form
	if cmd.UID != "" {
		form.UID = cmd.UID
	}
	if cmd.Name != "" {
		form.Name = cmd.Name
	}
	if cmd.Date != "" {
		form.TargetDate = cmd.Date
	}
	switch {
	case cmd.Active:
		form.Active = true
	case cmd.Inactive:
		form.Active = false
	}
	if cmd.Scan {
		if form, err = scanInto(bg, ctx, p, form); err != nil {
			return err
		}
	}
	return ctx.Report(p.Submit(bg, form))
}
