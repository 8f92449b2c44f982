package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/panel"
)

// ConfirmationFormModel backs the yes/no dialog shown before destructive
// device operations.
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// NewCountdownForm creates the add/edit dialog. Values are validated by
// the panel on submit, so the fields carry no validators.
func NewCountdownForm(title string, fm *panel.Form) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("UID").
				Description("ctrl+s: "+constants.ScanLabel).
				Value(&fm.UID),
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Datum").
				Placeholder("JJJJ-MM-TT").
				Value(&fm.TargetDate),
			huh.NewConfirm().
				Title("Aktiv").
				Affirmative("Ja").
				Negative("Nein").
				Value(&fm.Active),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewWiFiForm creates the WiFi credentials dialog.
func NewWiFiForm(creds *models.WiFiCredentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSID").
				Value(&creds.SSID),
			huh.NewInput().
				Title("Passwort").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no dialog for fm.Message.
func NewConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Ja").
				Negative("Nein").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
