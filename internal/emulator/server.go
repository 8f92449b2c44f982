package emulator

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/storage"
)

// Server emulates the countdown display's web server on top of a store.
type Server struct {
	store  storage.Provider
	reader *Reader
	mux    *http.ServeMux

	clientIP     string
	restartDelay time.Duration
	onRestart    func()
	now          func() time.Time

	mu       sync.RWMutex
	apMode   bool
	ssid     string
	restarts int
}

// Option configures a Server.
type Option func(*Server)

// WithReader replaces the card reader, e.g. to share it with a CLI.
func WithReader(r *Reader) Option {
	return func(s *Server) { s.reader = r }
}

// WithClientIP sets the address reported in WiFi client mode.
func WithClientIP(ip string) Option {
	return func(s *Server) { s.clientIP = ip }
}

// WithRestartDelay sets how long after answering a restart request the
// emulated reboot happens.
func WithRestartDelay(d time.Duration) Option {
	return func(s *Server) { s.restartDelay = d }
}

// WithRestartHook is called after every emulated reboot.
func WithRestartHook(fn func()) Option {
	return func(s *Server) { s.onRestart = fn }
}

// WithClock overrides the time source used by the display endpoint.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates an emulator and "boots" it: the network mode comes from the
// stored WiFi credentials.
func New(store storage.Provider, opts ...Option) (*Server, error) {
	s := &Server{
		store:        store,
		reader:       NewReader(),
		mux:          http.NewServeMux(),
		clientIP:     "127.0.0.1",
		restartDelay: 500 * time.Millisecond,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.boot(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// boot applies the stored WiFi credentials like the firmware does at startup.
func (s *Server) boot() error {
	wifi, err := s.store.GetWiFi()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apMode = wifi.SSID == ""
	s.ssid = wifi.SSID
	return nil
}

// Reader returns the simulated card reader.
func (s *Server) Reader() *Reader {
	return s.reader
}

// Restarts returns how many emulated reboots happened.
func (s *Server) Restarts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restarts
}

func (s *Server) restart() {
	if err := s.boot(); err != nil {
		logger.Error("emulated restart failed", "err", err)
		return
	}
	s.mu.Lock()
	s.restarts++
	ap := s.apMode
	s.mu.Unlock()

	logger.Info("emulated device restarted", "ap_mode", ap)
	if s.onRestart != nil {
		s.onRestart()
	}
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("emulator listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("emulator request",
			"request_id", r.Header.Get(constants.HeaderRequestID),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
