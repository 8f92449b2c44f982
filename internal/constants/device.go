package constants

import "time"

// Firmware limits and defaults mirrored by the emulator.
const (
	MaxCountdowns    = 20
	ScanCacheWindow  = 10 * time.Second
	DefaultAPSSID    = "CountdownDisplay"
	DefaultAPAddress = "192.168.4.1"
	DefaultListen    = "127.0.0.1:8080"
	DefaultStorePath = "~/.config/countdownctl/emulator.db"

	ReasonInvalidJSON  = "Invalid JSON"
	ReasonAddFailed    = "Konnte Countdown nicht hinzufügen"
	ReasonUpdateFailed = "Konnte Countdown nicht aktualisieren"
	ReasonDeleteFailed = "Konnte Countdown nicht löschen"
	ReasonMissingUID   = "Keine UID angegeben"
	ReasonWiFiFailed   = "Konnte WiFi Einstellungen nicht speichern"
	ReasonNoCard       = "Keine Karte gefunden. Bitte Karte nah an Leser halten."
	MessageWiFiSaved   = "WiFi Einstellungen gespeichert. Neustart erforderlich."
	MessageRestarting  = "Neustarte..."
)
