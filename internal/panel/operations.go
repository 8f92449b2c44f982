package panel

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/device"
	apperrors "github.com/julianstephens/countdownctl/internal/errors"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/models"
)

// ErrModalClosed is returned by Submit when no dialog is open.
var ErrModalClosed = errors.New("no countdown dialog is open")

// LoadStatus fetches the network snapshot. On failure the placeholders
// stay and nothing is shown to the operator.
func (c *Controller) LoadStatus(ctx context.Context) error {
	status, err := c.api.Status(ctx)
	if err != nil {
		logger.Error("Fehler beim Laden des Status", "err", err)
		return err
	}
	c.update(func(s *State) {
		s.Status = &status
	})
	return nil
}

// LoadCountdowns replaces the cached list. On failure the list shows the
// error message and the cache is left as it was.
func (c *Controller) LoadCountdowns(ctx context.Context) error {
	list, err := c.api.ListCountdowns(ctx)
	if err != nil {
		logger.Error("Fehler beim Laden der Countdowns", "err", err)
		c.update(func(s *State) {
			s.Phase = ListFailed
		})
		return err
	}
	c.update(func(s *State) {
		s.Countdowns = list
		s.Phase = ListLoaded
	})
	return nil
}

// LoadWiFi prefills the SSID when the device has one stored.
func (c *Controller) LoadWiFi(ctx context.Context) error {
	cfg, err := c.api.WiFi(ctx)
	if err != nil {
		logger.Error("Fehler beim Laden der WiFi Einstellungen", "err", err)
		return err
	}
	if cfg.SSID != "" {
		c.update(func(s *State) {
			s.WiFiSSID = cfg.SSID
		})
	}
	return nil
}

// OpenAdd opens the dialog with a blank, active form.
func (c *Controller) OpenAdd() {
	c.update(func(s *State) {
		s.Modal = Modal{Kind: ModalAdding}
		s.Form = Form{Active: true}
	})
}

// OpenEdit opens the dialog prefilled from the cached record with the
// given uid. Unknown uids leave the dialog closed and return false.
func (c *Controller) OpenEdit(uid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cd, ok := models.FindCountdown(c.state.Countdowns, uid)
	if !ok {
		return false
	}
	c.state.Modal = Modal{Kind: ModalEditing, OriginalUID: uid}
	c.state.Form = formFrom(cd)
	return true
}

// CloseModal hides the dialog. Form values are kept until the next open.
func (c *Controller) CloseModal() {
	c.update(func(s *State) {
		s.Modal = Modal{}
	})
}

// UpdateForm stores the operator's current input.
func (c *Controller) UpdateForm(f Form) {
	c.update(func(s *State) {
		s.Form = f
	})
}

// Submit saves form through the open dialog: a create while adding, an
// update of the record the dialog was opened for while editing. On success
// the dialog closes and the list reloads; on failure it stays open.
func (c *Controller) Submit(ctx context.Context, form Form) (Notice, error) {
	c.mu.Lock()
	modal := c.state.Modal
	c.state.Form = form
	c.mu.Unlock()

	if !modal.IsOpen() {
		return Notice{}, ErrModalClosed
	}

	if err := form.Validate(); err != nil {
		n := failure(constants.NoticeErrorPrefix + err.Error())
		return n, apperrors.Failed("save", n.Message, nil)
	}

	body := form.Countdown()
	var err error
	if modal.Kind == ModalEditing {
		err = c.api.UpdateCountdown(ctx, modal.OriginalUID, body)
	} else {
		err = c.api.CreateCountdown(ctx, body)
	}
	if err != nil {
		n := failureNotice(err, constants.NoticeErrorPrefix, constants.NoticeSaveFailed)
		logger.Error("Fehler beim Speichern", "uid", body.UID, "err", err)
		return n, apperrors.Failed("save", n.Message, err)
	}

	c.CloseModal()
	_ = c.LoadCountdowns(ctx)
	return success(constants.NoticeSaved), nil
}

// ScanCard reads a card through the device and writes its uid into the
// form. The scan button is busy for the duration and restored on every
// exit path.
func (c *Controller) ScanCard(ctx context.Context) (Notice, error) {
	c.update(func(s *State) {
		s.Scan = ScanButton{Disabled: true, Label: constants.ScanBusyLabel}
	})
	defer c.update(func(s *State) {
		s.Scan = idleScanButton
	})

	if c.scanDelay > 0 {
		timer := time.NewTimer(c.scanDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			n := failure(constants.NoticeScanFailed)
			return n, apperrors.Failed("scan", n.Message, ctx.Err())
		case <-timer.C:
		}
	}

	uid, err := c.api.ScanCard(ctx)
	if err != nil {
		if _, isAPI := device.Reason(err); isAPI {
			n := info(constants.NoticeNoCard)
			return n, apperrors.Failed("scan", n.Message, err)
		}
		logger.Error("Fehler beim Scannen", "err", err)
		n := failure(constants.NoticeScanFailed)
		return n, apperrors.Failed("scan", n.Message, err)
	}

	c.update(func(s *State) {
		s.Form.UID = uid
	})
	return success(constants.NoticeScanned + uid), nil
}

// Delete removes the countdown with the given uid after confirmation.
// A declined confirmation sends nothing and returns a zero Notice.
func (c *Controller) Delete(ctx context.Context, uid string, confirm ConfirmFunc) (Notice, error) {
	if !confirm(constants.ConfirmDelete) {
		return Notice{}, nil
	}

	if err := c.api.DeleteCountdown(ctx, uid); err != nil {
		logger.Error("Fehler beim Löschen", "uid", uid, "err", err)
		n := failureNotice(err, constants.NoticeDeletePrefix, constants.NoticeDeleteFailed)
		return n, apperrors.Failed("delete", n.Message, err)
	}

	_ = c.LoadCountdowns(ctx)
	return success(constants.NoticeDeleted), nil
}

// SaveWiFi stores new credentials after confirmation and then asks the
// device to restart. The restart outcome is only logged.
func (c *Controller) SaveWiFi(ctx context.Context, creds models.WiFiCredentials, confirm ConfirmFunc) (Notice, error) {
	if !confirm(constants.ConfirmWiFiSave) {
		return Notice{}, nil
	}

	if err := c.api.SaveWiFi(ctx, creds); err != nil {
		logger.Error("Fehler beim Speichern", "ssid", creds.SSID, "err", err)
		n := failureNotice(err, constants.NoticeErrorPrefix, constants.NoticeWiFiSaveFailed)
		return n, apperrors.Failed("wifi", n.Message, err)
	}

	c.update(func(s *State) {
		s.WiFiSSID = creds.SSID
	})
	if err := c.api.Restart(ctx); err != nil {
		logger.Error("Fehler beim Neustart", "err", err)
	}
	return success(constants.NoticeWiFiSaved), nil
}

// Restart asks the device to reboot after confirmation. A transport
// failure is only logged: no notice, no error.
func (c *Controller) Restart(ctx context.Context, confirm ConfirmFunc) (Notice, error) {
	if !confirm(constants.ConfirmRestart) {
		return Notice{}, nil
	}

	if err := c.api.Restart(ctx); err != nil {
		logger.Error("Fehler beim Neustart", "err", err)
		return Notice{}, nil
	}
	return info(constants.NoticeRestarting), nil
}

// failureNotice maps a device error to its notice: an application failure
// gets prefix plus the device's reason, anything else the generic text.
func failureNotice(err error, prefix, generic string) Notice {
	if reason, ok := device.Reason(err); ok {
		if reason == "" {
			reason = constants.NoticeUnknownError
		}
		return failure(prefix + reason)
	}
	return failure(generic)
}
