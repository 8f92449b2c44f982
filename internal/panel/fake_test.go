package panel

import (
	"context"
	"sync"

	"github.com/julianstephens/countdownctl/internal/models"
)

type call struct {
	Method string
	Path   string
	Body   interface{}
}

// fakeAPI is an in-memory device recording every request the panel makes.
type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	status    models.Status
	statusErr error

	list    []models.Countdown
	listErr error

	mutateErr error

	scanUID string
	scanErr error

	wifi       models.WiFiConfig
	wifiErr    error
	restartErr error
}

func (f *fakeAPI) record(method, path string, body interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
}

func (f *fakeAPI) callsTo(method string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) Status(ctx context.Context) (models.Status, error) {
	f.record("GET", "/api/status", nil)
	return f.status, f.statusErr
}

func (f *fakeAPI) ListCountdowns(ctx context.Context) ([]models.Countdown, error) {
	f.record("GET", "/api/countdowns", nil)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Countdown{}, f.list...), nil
}

func (f *fakeAPI) CreateCountdown(ctx context.Context, cd models.Countdown) error {
	f.record("POST", "/api/countdowns", cd)
	return f.mutateErr
}

func (f *fakeAPI) UpdateCountdown(ctx context.Context, originalUID string, cd models.Countdown) error {
	f.record("PUT", "/api/countdowns/"+originalUID, cd)
	return f.mutateErr
}

func (f *fakeAPI) DeleteCountdown(ctx context.Context, uid string) error {
	f.record("DELETE", "/api/countdowns/"+uid, nil)
	return f.mutateErr
}

func (f *fakeAPI) ScanCard(ctx context.Context) (string, error) {
	f.record("GET", "/api/scan-card", nil)
	return f.scanUID, f.scanErr
}

func (f *fakeAPI) WiFi(ctx context.Context) (models.WiFiConfig, error) {
	f.record("GET", "/api/wifi", nil)
	return f.wifi, f.wifiErr
}

func (f *fakeAPI) SaveWiFi(ctx context.Context, creds models.WiFiCredentials) error {
	f.record("POST", "/api/wifi", creds)
	return f.mutateErr
}

func (f *fakeAPI) Restart(ctx context.Context) error {
	f.record("POST", "/api/restart", nil)
	return f.restartErr
}
