package emulator

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// setupRoutes registers the device API and the emulator controls
func (s *Server) setupRoutes() {
	// Countdowns
	s.mux.HandleFunc("GET /api/countdowns", s.handleListCountdowns)
	s.mux.HandleFunc("POST /api/countdowns", s.handleAddCountdown)
	s.mux.HandleFunc("PUT /api/countdowns/{uid}", s.handleUpdateCountdown)
	s.mux.HandleFunc("DELETE /api/countdowns/{uid}", s.handleDeleteCountdown)
	s.mux.HandleFunc("DELETE /api/countdowns/{$}", s.handleMissingUID)

	// Device
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/wifi", s.handleGetWiFi)
	s.mux.HandleFunc("POST /api/wifi", s.handleSaveWiFi)
	s.mux.HandleFunc("GET /api/scan-card", s.handleScanCard)
	s.mux.HandleFunc("POST /api/restart", s.handleRestart)

	// Emulator controls
	s.mux.HandleFunc("POST /emu/cards", s.handlePresentCard)
	s.mux.HandleFunc("GET /emu/display", s.handleDisplay)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", "err", err)
	}
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.Result{Success: true, Message: message})
}

func writeFailure(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusBadRequest, models.Result{Success: false, Error: reason})
}

// decodeCountdown reads a countdown body. Missing fields decode as zero
// values, as on the device.
func decodeCountdown(r *http.Request) (models.Countdown, error) {
	var cd models.Countdown
	err := json.NewDecoder(r.Body).Decode(&cd)
	return cd, err
}

func (s *Server) handleListCountdowns(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListCountdowns()
	if err != nil {
		logger.Error("failed to list countdowns", "err", err)
		writeJSON(w, http.StatusInternalServerError, []models.Countdown{})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddCountdown(w http.ResponseWriter, r *http.Request) {
	cd, err := decodeCountdown(r)
	if err != nil {
		writeFailure(w, constants.ReasonInvalidJSON)
		return
	}
	if err := s.store.AddCountdown(cd); err != nil {
		logger.Warn("add countdown rejected", "uid", cd.UID, "err", err)
		writeFailure(w, constants.ReasonAddFailed)
		return
	}
	writeOK(w, "")
}

func (s *Server) handleUpdateCountdown(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	cd, err := decodeCountdown(r)
	if err != nil {
		writeFailure(w, constants.ReasonInvalidJSON)
		return
	}
	if err := s.store.UpdateCountdown(uid, cd); err != nil {
		logger.Warn("update countdown rejected", "uid", uid, "new_uid", cd.UID, "err", err)
		writeFailure(w, constants.ReasonUpdateFailed)
		return
	}
	writeOK(w, "")
}

func (s *Server) handleDeleteCountdown(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if err := s.store.DeleteCountdown(uid); err != nil {
		logger.Warn("delete countdown rejected", "uid", uid, "err", err)
		writeFailure(w, constants.ReasonDeleteFailed)
		return
	}
	writeOK(w, "")
}

func (s *Server) handleMissingUID(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, constants.ReasonMissingUID)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := models.Status{APMode: s.apMode, IP: s.clientIP, SSID: s.ssid}
	s.mu.RUnlock()

	if status.APMode {
		status.IP = constants.DefaultAPAddress
		status.SSID = constants.DefaultAPSSID
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGetWiFi(w http.ResponseWriter, r *http.Request) {
	wifi, err := s.store.GetWiFi()
	if err != nil {
		logger.Error("failed to read wifi settings", "err", err)
	}

	s.mu.RLock()
	ap := s.apMode
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, models.WiFiConfig{
		SSID:        wifi.SSID,
		HasPassword: wifi.Password != "",
		APMode:      ap,
	})
}

func (s *Server) handleSaveWiFi(w http.ResponseWriter, r *http.Request) {
	var creds models.WiFiCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFailure(w, constants.ReasonInvalidJSON)
		return
	}
	if creds.SSID == "" {
		writeFailure(w, constants.ReasonWiFiFailed)
		return
	}
	if err := s.store.SaveWiFi(creds.SSID, creds.Password); err != nil {
		logger.Error("failed to save wifi settings", "err", err)
		writeFailure(w, constants.ReasonWiFiFailed)
		return
	}
	writeOK(w, constants.MessageWiFiSaved)
}

func (s *Server) handleScanCard(w http.ResponseWriter, r *http.Request) {
	uid := s.reader.Read()
	if uid == "" {
		writeJSON(w, http.StatusOK, models.ScanResult{Success: false, Error: constants.ReasonNoCard})
		return
	}
	writeJSON(w, http.StatusOK, models.ScanResult{Success: true, UID: uid})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	writeOK(w, constants.MessageRestarting)
	time.AfterFunc(s.restartDelay, s.restart)
}

type presentRequest struct {
	UID string `json:"uid"`
}

func (s *Server) handlePresentCard(w http.ResponseWriter, r *http.Request) {
	var req presentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, constants.ReasonInvalidJSON)
		return
	}
	if models.NormalizeUID(req.UID) == "" {
		writeFailure(w, constants.ReasonMissingUID)
		return
	}
	s.reader.Present(req.UID)
	writeOK(w, "")
}

// DisplayState is what the e-ink screen shows for the last card read.
type DisplayState struct {
	UID           string `json:"uid"`
	Known         bool   `json:"known"`
	Name          string `json:"name,omitempty"`
	TargetDate    string `json:"targetDate,omitempty"`
	DaysRemaining int    `json:"daysRemaining"`
}

// Display resolves the last read card to the active countdown it shows.
func (s *Server) Display() (DisplayState, error) {
	uid := s.reader.Last()
	state := DisplayState{UID: uid}
	if uid == "" {
		return state, nil
	}

	cd, err := s.store.GetCountdown(uid)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && !cd.Active) {
		return state, nil
	}
	if err != nil {
		return state, err
	}

	now := s.now()
	target, err := utils.ParseDateInLocation(cd.TargetDate, now.Location())
	if err != nil {
		return state, err
	}
	state.Known = true
	state.Name = cd.Name
	state.TargetDate = cd.TargetDate
	state.DaysRemaining = utils.CalendarDaysBetween(now, target)
	return state, nil
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	state, err := s.Display()
	if err != nil {
		logger.Error("failed to resolve display", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.Result{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}
