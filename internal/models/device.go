package models

// Status is the device's network snapshot from GET /api/status.
type Status struct {
	APMode bool   `json:"apMode"`
	IP     string `json:"ip"`
	SSID   string `json:"ssid"`
}

// WiFiConfig is returned by GET /api/wifi. The password is never sent back.
type WiFiConfig struct {
	SSID        string `json:"ssid"`
	HasPassword bool   `json:"hasPassword,omitempty"`
	APMode      bool   `json:"apMode,omitempty"`
}

// WiFiCredentials is the body of POST /api/wifi.
type WiFiCredentials struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// Result is the envelope every mutating endpoint answers with.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ScanResult is returned by GET /api/scan-card.
type ScanResult struct {
	Success bool   `json:"success"`
	UID     string `json:"uid,omitempty"`
	Error   string `json:"error,omitempty"`
}
