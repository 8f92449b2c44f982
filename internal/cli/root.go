package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/countdownctl/internal/config"
	"github.com/julianstephens/countdownctl/internal/device"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/panel"
)

// Context is handed to every command's Run method.
type Context struct {
	Config *config.Config
	Out    io.Writer

	// Confirm asks the operator before destructive operations. Commands
	// with --yes bypass it.
	Confirm panel.ConfirmFunc

	client *device.Client
	panel  *panel.Controller
}

// NewContext creates a command context writing to stdout and asking for
// confirmation on the terminal.
func NewContext(cfg *config.Config) *Context {
	return &Context{
		Config:  cfg,
		Out:     os.Stdout,
		Confirm: AskConfirm,
	}
}

// Client returns the device client for the configured URL.
func (c *Context) Client() (*device.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	client, err := device.New(c.Config.Device.URL, device.WithTimeout(c.Config.Device.Timeout))
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

// Panel returns the panel controller driving the configured device.
func (c *Context) Panel() (*panel.Controller, error) {
	if c.panel != nil {
		return c.panel, nil
	}
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	c.panel = panel.New(client, panel.WithScanDelay(c.Config.Device.ScanDelay))
	return c.panel, nil
}

// ConfirmFor returns AlwaysConfirm when yes is set and the interactive
// prompt otherwise.
func (c *Context) ConfirmFor(yes bool) panel.ConfirmFunc {
	if yes {
		return panel.AlwaysConfirm
	}
	return c.Confirm
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// PrintNotice writes n to Out. Zero notices print nothing.
func (c *Context) PrintNotice(n panel.Notice) {
	if n.IsZero() {
		return
	}
	switch n.Level {
	case panel.LevelSuccess:
		fmt.Fprintln(c.Out, successStyle.Render("✓ "+n.Message))
	case panel.LevelError:
		fmt.Fprintln(c.Out, errorStyle.Render("✗ "+n.Message))
	default:
		fmt.Fprintln(c.Out, infoStyle.Render("ℹ "+n.Message))
	}
}

// Report prints the outcome of a panel operation and passes err through,
// so failed operations end with a non-zero exit code.
func (c *Context) Report(n panel.Notice, err error) error {
	c.PrintNotice(n)
	return err
}

// Printf writes to Out.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Signals returns a context cancelled on SIGINT or SIGTERM.
func Signals() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// AskConfirm shows a yes/no prompt. A prompt that cannot run counts as no.
func AskConfirm(message string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(message).
		Affirmative("Ja").
		Negative("Nein").
		Value(&ok).
		Run()
	if err != nil {
		logger.Warn("confirmation prompt failed", "err", err)
		return false
	}
	return ok
}
