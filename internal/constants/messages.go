package constants

// Operator-facing text. The panel speaks one fixed language (German), like
// the web UI shipped on the device.
const (
	ModeAccessPoint = "Access Point"
	ModeWiFiClient  = "WiFi Client"
	Placeholder     = "-"

	ListLoading = "Laden..."
	ListError   = "Fehler beim Laden"
	ListEmpty   = "Keine Countdowns konfiguriert"

	DaysRemainingWord = "verbleibend"
	DaysElapsedWord   = "vergangen"
	InactiveMarker    = "⏸️ Inaktiv"
	DaysLineFormat    = "⏱️ %d Tage %s"
	DateLinePrefix    = "📅 Datum: "
	UIDLinePrefix     = "🔖 UID: "

	ModalTitleAdd  = "Countdown hinzufügen"
	ModalTitleEdit = "Countdown bearbeiten"

	ScanLabel     = "Karte Scannen"
	ScanBusyLabel = "Scanne..."

	NoticeSaved        = "Countdown erfolgreich gespeichert!"
	NoticeSaveFailed   = "Fehler beim Speichern des Countdowns"
	NoticeDeleted      = "Countdown gelöscht!"
	NoticeDeleteFailed = "Fehler beim Löschen des Countdowns"
	NoticeErrorPrefix  = "Fehler: "
	NoticeDeletePrefix = "Fehler beim Löschen: "
	NoticeUnknownError = "Unbekannter Fehler"

	NoticeScanned    = "Karte gescannt: "
	NoticeNoCard     = "Keine Karte gefunden. Bitte Karte näher an den Leser halten und erneut versuchen."
	NoticeScanFailed = "Fehler beim Scannen der Karte"

	NoticeWiFiSaved      = "WiFi Einstellungen gespeichert. System wird neu gestartet..."
	NoticeWiFiSaveFailed = "Fehler beim Speichern der WiFi Einstellungen"
	NoticeRestarting     = "System wird neu gestartet..."

	FormMissingUID  = "Bitte Karte scannen oder UID eingeben"
	FormMissingName = "Bitte einen Namen eingeben"
	FormInvalidDate = "Bitte ein gültiges Datum eingeben (JJJJ-MM-TT)"

	ConfirmDelete   = "Möchtest du diesen Countdown wirklich löschen?"
	ConfirmWiFiSave = "WiFi Einstellungen speichern? Das System wird neu gestartet."
	ConfirmRestart  = "System wirklich neu starten?"
)
