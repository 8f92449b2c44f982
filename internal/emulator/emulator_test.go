package emulator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage/sqlite"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "emulator.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	s, err := New(store, opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func call(t *testing.T, ts *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func decodeResult(t *testing.T, data []byte) models.Result {
	t.Helper()
	var res models.Result
	require.NoError(t, json.Unmarshal(data, &res))
	return res
}

func listCountdowns(t *testing.T, ts *httptest.Server) []models.Countdown {
	t.Helper()
	status, data := call(t, ts, http.MethodGet, "/api/countdowns", "")
	require.Equal(t, http.StatusOK, status)
	var list []models.Countdown
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

const birthday = `{"uid":"AABBCCDD","name":"Geburtstag","targetDate":"2026-12-24","active":true}`

func TestCountdowns_AddAndList(t *testing.T) {
	_, ts := newTestServer(t)

	assert.Empty(t, listCountdowns(t, ts))

	status, data := call(t, ts, http.MethodPost, "/api/countdowns", birthday)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, decodeResult(t, data).Success)

	list := listCountdowns(t, ts)
	require.Len(t, list, 1)
	assert.Equal(t, "AABBCCDD", list[0].UID)
	assert.Equal(t, "Geburtstag", list[0].Name)
	assert.True(t, list[0].Active)
}

func TestCountdowns_DuplicateRejected(t *testing.T) {
	_, ts := newTestServer(t)

	call(t, ts, http.MethodPost, "/api/countdowns", birthday)
	status, data := call(t, ts, http.MethodPost, "/api/countdowns", birthday)

	assert.Equal(t, http.StatusBadRequest, status)
	res := decodeResult(t, data)
	assert.False(t, res.Success)
	assert.Equal(t, constants.ReasonAddFailed, res.Error)
	assert.Len(t, listCountdowns(t, ts), 1)
}

func TestCountdowns_LimitReached(t *testing.T) {
	_, ts := newTestServer(t)

	for i := 0; i < constants.MaxCountdowns; i++ {
		body, _ := json.Marshal(models.Countdown{UID: string(rune('A'+i)) + "1", Name: "n", TargetDate: "2026-01-01"})
		status, _ := call(t, ts, http.MethodPost, "/api/countdowns", string(body))
		require.Equal(t, http.StatusOK, status)
	}

	status, data := call(t, ts, http.MethodPost, "/api/countdowns", birthday)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonAddFailed, decodeResult(t, data).Error)
}

func TestCountdowns_InvalidJSON(t *testing.T) {
	_, ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/countdowns"},
		{http.MethodPut, "/api/countdowns/AABBCCDD"},
		{http.MethodPost, "/api/wifi"},
	} {
		status, data := call(t, ts, tc.method, tc.path, "{not json")
		assert.Equal(t, http.StatusBadRequest, status, tc.path)
		assert.Equal(t, constants.ReasonInvalidJSON, decodeResult(t, data).Error, tc.path)
	}
}

func TestCountdowns_UpdateRekeysInPlace(t *testing.T) {
	_, ts := newTestServer(t)

	call(t, ts, http.MethodPost, "/api/countdowns", `{"uid":"01","name":"first","targetDate":"2026-01-01","active":true}`)
	call(t, ts, http.MethodPost, "/api/countdowns", birthday)
	call(t, ts, http.MethodPost, "/api/countdowns", `{"uid":"03","name":"last","targetDate":"2026-01-01","active":true}`)

	status, _ := call(t, ts, http.MethodPut, "/api/countdowns/AABBCCDD",
		`{"uid":"11223344","name":"Weihnachten","targetDate":"2026-12-24","active":false}`)
	require.Equal(t, http.StatusOK, status)

	list := listCountdowns(t, ts)
	require.Len(t, list, 3)
	assert.Equal(t, "11223344", list[1].UID)
	assert.Equal(t, "Weihnachten", list[1].Name)
	assert.False(t, list[1].Active)
}

func TestCountdowns_UpdateUnknown(t *testing.T) {
	_, ts := newTestServer(t)

	status, data := call(t, ts, http.MethodPut, "/api/countdowns/DEADBEEF", birthday)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonUpdateFailed, decodeResult(t, data).Error)
}

func TestCountdowns_Delete(t *testing.T) {
	_, ts := newTestServer(t)
	call(t, ts, http.MethodPost, "/api/countdowns", birthday)

	status, data := call(t, ts, http.MethodDelete, "/api/countdowns/AABBCCDD", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, decodeResult(t, data).Success)
	assert.Empty(t, listCountdowns(t, ts))

	status, data = call(t, ts, http.MethodDelete, "/api/countdowns/AABBCCDD", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonDeleteFailed, decodeResult(t, data).Error)

	status, data = call(t, ts, http.MethodDelete, "/api/countdowns/", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonMissingUID, decodeResult(t, data).Error)
}

func TestStatus_APModeWithoutCredentials(t *testing.T) {
	_, ts := newTestServer(t)

	status, data := call(t, ts, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, status)

	var st models.Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.True(t, st.APMode)
	assert.Equal(t, constants.DefaultAPAddress, st.IP)
	assert.Equal(t, constants.DefaultAPSSID, st.SSID)
}

func TestWiFi_SaveThenRestartSwitchesToClient(t *testing.T) {
	restarted := make(chan struct{}, 1)
	s, ts := newTestServer(t,
		WithRestartDelay(time.Millisecond),
		WithClientIP("10.0.0.7"),
		WithRestartHook(func() { restarted <- struct{}{} }),
	)

	status, data := call(t, ts, http.MethodPost, "/api/wifi", `{"ssid":"Zuhause","password":"geheim"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.MessageWiFiSaved, decodeResult(t, data).Message)

	// Saved but not applied until the device reboots.
	_, data = call(t, ts, http.MethodGet, "/api/wifi", "")
	var cfg models.WiFiConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "Zuhause", cfg.SSID)
	assert.True(t, cfg.HasPassword)
	assert.True(t, cfg.APMode)
	assert.NotContains(t, string(data), "geheim")

	status, data = call(t, ts, http.MethodPost, "/api/restart", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.MessageRestarting, decodeResult(t, data).Message)

	select {
	case <-restarted:
	case <-time.After(2 * time.Second):
		t.Fatal("emulated restart did not happen")
	}
	assert.Equal(t, 1, s.Restarts())

	_, data = call(t, ts, http.MethodGet, "/api/status", "")
	var st models.Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.False(t, st.APMode)
	assert.Equal(t, "10.0.0.7", st.IP)
	assert.Equal(t, "Zuhause", st.SSID)
}

func TestWiFi_EmptySSIDRejected(t *testing.T) {
	_, ts := newTestServer(t)

	status, data := call(t, ts, http.MethodPost, "/api/wifi", `{"ssid":"","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonWiFiFailed, decodeResult(t, data).Error)
}

func TestScanCard(t *testing.T) {
	s, ts := newTestServer(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Reader().now = func() time.Time { return now }

	scan := func() models.ScanResult {
		status, data := call(t, ts, http.MethodGet, "/api/scan-card", "")
		require.Equal(t, http.StatusOK, status)
		var res models.ScanResult
		require.NoError(t, json.Unmarshal(data, &res))
		return res
	}

	res := scan()
	assert.False(t, res.Success)
	assert.Equal(t, constants.ReasonNoCard, res.Error)

	status, _ := call(t, ts, http.MethodPost, "/emu/cards", `{"uid":"a1b2c3d4"}`)
	require.Equal(t, http.StatusOK, status)

	res = scan()
	assert.True(t, res.Success)
	assert.Equal(t, "A1B2C3D4", res.UID)

	// The last card is still reported shortly after it was read.
	now = now.Add(constants.ScanCacheWindow - time.Second)
	assert.Equal(t, "A1B2C3D4", scan().UID)

	now = now.Add(2 * time.Second)
	assert.False(t, scan().Success)
}

func TestPresentCard_MissingUID(t *testing.T) {
	s, ts := newTestServer(t)

	status, data := call(t, ts, http.MethodPost, "/emu/cards", `{"uid":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.ReasonMissingUID, decodeResult(t, data).Error)
	assert.Zero(t, s.Reader().Pending())
}

func TestDisplay(t *testing.T) {
	now := time.Date(2026, 12, 20, 18, 0, 0, 0, time.UTC)
	s, ts := newTestServer(t, WithClock(func() time.Time { return now }))
	call(t, ts, http.MethodPost, "/api/countdowns", birthday)

	state, err := s.Display()
	require.NoError(t, err)
	assert.False(t, state.Known)

	s.Reader().Present("aabbccdd")
	s.Reader().Read()

	state, err = s.Display()
	require.NoError(t, err)
	assert.True(t, state.Known)
	assert.Equal(t, "Geburtstag", state.Name)
	assert.Equal(t, 4, state.DaysRemaining)

	s.Reader().Present("FFFFFFFF")
	s.Reader().Read()
	state, err = s.Display()
	require.NoError(t, err)
	assert.Equal(t, "FFFFFFFF", state.UID)
	assert.False(t, state.Known)
}

func TestServe_StopsOnCancel(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "emulator.db"))
	require.NoError(t, store.Init())
	defer store.Close()
	s, err := New(store)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
