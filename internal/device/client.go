package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/logger"
	"github.com/julianstephens/countdownctl/internal/models"
)

// Client talks to the countdown display's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a client-wide request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the device at baseURL (e.g. http://192.168.4.1).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid device url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid device url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid device url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the device address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the network snapshot.
func (c *Client) Status(ctx context.Context) (models.Status, error) {
	var status models.Status
	err := c.do(ctx, http.MethodGet, constants.PathStatus, nil, &status)
	return status, err
}

// ListCountdowns fetches every stored countdown in device order.
func (c *Client) ListCountdowns(ctx context.Context) ([]models.Countdown, error) {
	var list []models.Countdown
	if err := c.do(ctx, http.MethodGet, constants.PathCountdowns, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Countdown{}
	}
	return list, nil
}

// CreateCountdown stores a new countdown.
func (c *Client) CreateCountdown(ctx context.Context, cd models.Countdown) error {
	return c.mutate(ctx, http.MethodPost, constants.PathCountdowns, cd)
}

// UpdateCountdown replaces the record stored under originalUID with cd.
// cd.UID may differ from originalUID, in which case the record is re-keyed.
func (c *Client) UpdateCountdown(ctx context.Context, originalUID string, cd models.Countdown) error {
	return c.mutate(ctx, http.MethodPut, countdownPath(originalUID), cd)
}

// DeleteCountdown removes the countdown stored under uid.
func (c *Client) DeleteCountdown(ctx context.Context, uid string) error {
	return c.mutate(ctx, http.MethodDelete, countdownPath(uid), nil)
}

// ScanCard asks the reader for a card UID. A {success:false} answer is
// returned as *APIError.
func (c *Client) ScanCard(ctx context.Context) (string, error) {
	var res models.ScanResult
	if err := c.do(ctx, http.MethodGet, constants.PathScanCard, nil, &res); err != nil {
		return "", err
	}
	if !res.Success || res.UID == "" {
		return "", &APIError{Reason: res.Error}
	}
	return res.UID, nil
}

// WiFi fetches the stored WiFi configuration.
func (c *Client) WiFi(ctx context.Context) (models.WiFiConfig, error) {
	var cfg models.WiFiConfig
	err := c.do(ctx, http.MethodGet, constants.PathWiFi, nil, &cfg)
	return cfg, err
}

// SaveWiFi stores new WiFi credentials. They take effect after a restart.
func (c *Client) SaveWiFi(ctx context.Context, creds models.WiFiCredentials) error {
	return c.mutate(ctx, http.MethodPost, constants.PathWiFi, creds)
}

// Restart asks the device to reboot. Only transport errors are reported;
// the body is not inspected.
func (c *Client) Restart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, constants.PathRestart, nil, nil)
}

func countdownPath(uid string) string {
	return constants.PathCountdowns + "/" + url.PathEscape(uid)
}

func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) error {
	var res models.Result
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return err
	}
	if !res.Success {
		return &APIError{Reason: res.Error}
	}
	return nil
}

// do performs one request. The device reports failures in the JSON body,
// sometimes with a 4xx status, so the body is decoded regardless of status.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestID := uuid.NewString()
	log := logger.With("request_id", requestID, "method", method, "path", path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set(constants.HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", "err", err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	log.Debug("request done", "status", resp.StatusCode, "duration", time.Since(start))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
