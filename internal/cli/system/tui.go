package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Panel()
	if err != nil {
		return err
	}
	bg, cancel := cli.Signals()
	defer cancel()

	prog := tea.NewProgram(tui.NewModel(bg, p, ctx.Config.Device.URL), tea.WithAltScreen(), tea.WithContext(bg))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("panel exited with error: %w", err)
	}
	return nil
}
