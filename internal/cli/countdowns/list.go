package countdowns

import (
	"fmt"
	"time"

	"github.com/julianstephens/countdownctl/internal/cli"
)

type ListCmd struct{}

func (cmd *ListCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	loadErr := p.LoadCountdowns(bg)
	fmt.Fprintln(ctx.Out, p.Render(time.Now()).String())
	return loadErr
}
