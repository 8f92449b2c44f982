package panel

import (
	"errors"
	"strings"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// ListPhase tracks the countdown list fetch.
type ListPhase int

const (
	ListLoading ListPhase = iota
	ListLoaded
	ListFailed
)

func (p ListPhase) String() string {
	switch p {
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "loading"
	}
}

// ModalKind is the tag of the add/edit dialog variant.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalAdding
	ModalEditing
)

// Modal is the add/edit dialog. OriginalUID is only meaningful while
// editing: it is the key the record had when the dialog opened and is used
// in the update path even if the form's uid was changed by a rescan.
type Modal struct {
	Kind        ModalKind
	OriginalUID string
}

// IsOpen reports whether the dialog is showing.
func (m Modal) IsOpen() bool {
	return m.Kind != ModalClosed
}

// Title returns the dialog heading for the current variant.
func (m Modal) Title() string {
	if m.Kind == ModalEditing {
		return constants.ModalTitleEdit
	}
	return constants.ModalTitleAdd
}

// Form holds the values of the add/edit dialog.
type Form struct {
	UID        string
	Name       string
	TargetDate string
	Active     bool
}

// Validate enforces the form constraints: every field required and a
// YYYY-MM-DD date.
func (f Form) Validate() error {
	if strings.TrimSpace(f.UID) == "" {
		return errors.New(constants.FormMissingUID)
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New(constants.FormMissingName)
	}
	if !utils.ValidateDate(f.TargetDate) {
		return errors.New(constants.FormInvalidDate)
	}
	return nil
}

// Countdown builds the request body. The uid is upper-cased.
func (f Form) Countdown() models.Countdown {
	return models.Countdown{
		UID:        models.NormalizeUID(f.UID),
		Name:       f.Name,
		TargetDate: f.TargetDate,
		Active:     f.Active,
	}
}

func formFrom(c models.Countdown) Form {
	return Form{
		UID:        c.UID,
		Name:       c.Name,
		TargetDate: c.TargetDate,
		Active:     c.Active,
	}
}

// ScanButton is the state of the "scan card" control.
type ScanButton struct {
	Disabled bool
	Label    string
}

var idleScanButton = ScanButton{Label: constants.ScanLabel}

// State is everything the panel shows. Controller hands out copies.
type State struct {
	// Status is nil until the first successful status load.
	Status     *models.Status
	Phase      ListPhase
	Countdowns []models.Countdown
	WiFiSSID   string
	Modal      Modal
	Form       Form
	Scan       ScanButton
}

func (s State) clone() State {
	out := s
	if s.Status != nil {
		status := *s.Status
		out.Status = &status
	}
	if s.Countdowns != nil {
		out.Countdowns = append([]models.Countdown(nil), s.Countdowns...)
	}
	return out
}

// StatusView is the status panel as displayed, with placeholders for
// values that have not loaded.
type StatusView struct {
	Mode string
	IP   string
	SSID string
}

// StatusView renders the status snapshot.
func (s State) StatusView() StatusView {
	if s.Status == nil {
		return StatusView{
			Mode: constants.Placeholder,
			IP:   constants.Placeholder,
			SSID: constants.Placeholder,
		}
	}
	mode := constants.ModeWiFiClient
	if s.Status.APMode {
		mode = constants.ModeAccessPoint
	}
	return StatusView{Mode: mode, IP: s.Status.IP, SSID: s.Status.SSID}
}
