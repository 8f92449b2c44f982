package constants

import (
	"time"
)

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "countdownctl"
	DefaultKeyringUser = "emulator-database-connection"
	DefaultConfigDir   = "~/.config/countdownctl"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the wire format of a countdown target date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Device defaults
	DefaultDeviceURL = "http://192.168.4.1"
	DefaultScanDelay = 500 * time.Millisecond

	// API paths
	APIBase           = "/api"
	PathStatus        = APIBase + "/status"
	PathCountdowns    = APIBase + "/countdowns"
	PathScanCard      = APIBase + "/scan-card"
	PathWiFi          = APIBase + "/wifi"
	PathRestart       = APIBase + "/restart"
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Session States. The main tabs come first, in display order.
const (
	StateCountdowns SessionState = iota
	StateWiFi
	StateStatus
	StateEditing
	StateEditWiFi
	StateConfirmation
)

// NumMainTabs is the number of tabs cycled with tab/shift+tab.
const NumMainTabs = 3
