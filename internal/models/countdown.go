package models

import "strings"

// Countdown is a named target date bound to an RFID card. UID is the only
// identity the device knows; there is no surrogate id.
type Countdown struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	TargetDate string `json:"targetDate"`          // YYYY-MM-DD, no timezone
	ImagePath  string `json:"imagePath,omitempty"` // firmware extension, ignored by the panel
	Active     bool   `json:"active"`
}

// NormalizeUID upper-cases and trims a card identifier.
func NormalizeUID(uid string) string {
	return strings.ToUpper(strings.TrimSpace(uid))
}

// FindCountdown returns the record with the given uid from an ordered list.
func FindCountdown(list []Countdown, uid string) (Countdown, bool) {
	for _, c := range list {
		if c.UID == uid {
			return c, true
		}
	}
	return Countdown{}, false
}

// ResolveUID picks the stored uid an operator meant. An exact match wins;
// otherwise a record whose uid normalizes to the same card is used. The
// device keys records on the uid exactly as stored.
func ResolveUID(list []Countdown, uid string) (string, bool) {
	if c, ok := FindCountdown(list, uid); ok {
		return c.UID, true
	}
	want := NormalizeUID(uid)
	for _, c := range list {
		if NormalizeUID(c.UID) == want {
			return c.UID, true
		}
	}
	return uid, false
}
