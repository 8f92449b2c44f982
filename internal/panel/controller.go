package panel

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
)

// API is the subset of the device client the panel drives.
type API interface {
	Status(ctx context.Context) (models.Status, error)
	ListCountdowns(ctx context.Context) ([]models.Countdown, error)
	CreateCountdown(ctx context.Context, cd models.Countdown) error
	UpdateCountdown(ctx context.Context, originalUID string, cd models.Countdown) error
	DeleteCountdown(ctx context.Context, uid string) error
	ScanCard(ctx context.Context) (string, error)
	WiFi(ctx context.Context) (models.WiFiConfig, error)
	SaveWiFi(ctx context.Context, creds models.WiFiCredentials) error
	Restart(ctx context.Context) error
}

// Controller owns the panel state and runs every panel operation against
// the device. It is safe for concurrent use; requests run without the
// lock held, so overlapping operations are not serialized.
type Controller struct {
	api       API
	scanDelay time.Duration

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithScanDelay sets the pause before a scan request, giving the operator
// time to hold the card to the reader.
func WithScanDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.scanDelay = d
	}
}

// New creates a controller in its initial state: list loading, status
// placeholders, dialog closed.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		scanDelay: constants.DefaultScanDelay,
		state: State{
			Phase: ListLoading,
			Scan:  idleScanButton,
			Form:  Form{Active: true},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Render renders the countdown list as of now.
func (c *Controller) Render(now time.Time) ListView {
	return RenderList(c.Snapshot(), now)
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// Init runs the three page-load fetches independently and waits for all
// of them. Failures are reflected in the state only.
func (c *Controller) Init(ctx context.Context) {
	var wg sync.WaitGroup
	loads := []func(context.Context) error{c.LoadStatus, c.LoadCountdowns, c.LoadWiFi}
	wg.Add(len(loads))
	for _, load := range loads {
		go func(load func(context.Context) error) {
			defer wg.Done()
			_ = load(ctx)
		}(load)
	}
	wg.Wait()
}
