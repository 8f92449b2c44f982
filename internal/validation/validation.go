package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateUID    ConflictType = "duplicate_uid"
	ConflictUnnormalizedUID ConflictType = "unnormalized_uid"
	ConflictMissingUID      ConflictType = "missing_uid"
	ConflictMissingName     ConflictType = "missing_name"
	ConflictInvalidDate     ConflictType = "invalid_date"
	ConflictDuplicateName   ConflictType = "duplicate_name"
	ConflictLimitExceeded   ConflictType = "limit_exceeded"
)

// Conflict represents a problem detected in a countdown list
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Countdown names involved
	UIDs        []string // UIDs of countdowns involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks countdown lists read from the device or an emulator store
type Validator struct {
	limit int
}

// New creates a Validator enforcing the device's countdown limit
func New() *Validator {
	return &Validator{limit: constants.MaxCountdowns}
}

// ValidateCountdowns checks list in device order. Conflicts are reported
// in the order the offending records appear.
func (v *Validator) ValidateCountdowns(list []models.Countdown) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(list) > v.limit {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictLimitExceeded,
			Description: fmt.Sprintf("Device holds %d countdowns, more than the supported %d", len(list), v.limit),
		})
	}

	uidSeen := make(map[string]bool)
	uidReported := make(map[string]bool)
	var nameOrder []string
	nameUIDs := make(map[string][]string)

	for _, cd := range list {
		label := cd.Name
		if label == "" {
			label = cd.UID
		}

		if strings.TrimSpace(cd.UID) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingUID,
				Description: fmt.Sprintf("Countdown \"%s\" has no card UID", label),
				Items:       []string{label},
			})
		} else {
			if uidSeen[cd.UID] && !uidReported[cd.UID] {
				uidReported[cd.UID] = true
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateUID,
					Description: fmt.Sprintf("Card UID %s is used by more than one countdown", cd.UID),
					Items:       []string{label},
					UIDs:        []string{cd.UID},
				})
			}
			uidSeen[cd.UID] = true

			// Scanned cards are always upper-case hex, so a lower-case
			// record never matches a card on the display.
			if normalized := models.NormalizeUID(cd.UID); normalized != cd.UID {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnnormalizedUID,
					Description: fmt.Sprintf("Countdown \"%s\" has UID %q, cards are read as %q", label, cd.UID, normalized),
					Items:       []string{label},
					UIDs:        []string{cd.UID},
				})
			}
		}

		if strings.TrimSpace(cd.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingName,
				Description: fmt.Sprintf("Countdown %s has no name", cd.UID),
				UIDs:        []string{cd.UID},
			})
		} else {
			if _, ok := nameUIDs[cd.Name]; !ok {
				nameOrder = append(nameOrder, cd.Name)
			}
			nameUIDs[cd.Name] = append(nameUIDs[cd.Name], cd.UID)
		}

		if !utils.ValidateDate(cd.TargetDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Countdown \"%s\" has invalid target date: %q", label, cd.TargetDate),
				Items:       []string{label},
				UIDs:        []string{cd.UID},
			})
		}
	}

	for _, name := range nameOrder {
		if uids := nameUIDs[name]; len(uids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("Duplicate countdown name: \"%s\" (UIDs: %v)", name, uids),
				Items:       []string{name},
				UIDs:        uids,
			})
		}
	}

	return result
}

// AutoFixUIDs rekeys countdowns whose UID is not in card format to the
// normalized UID. A record is left alone when the normalized UID is
// already taken. updateFunc receives the stored UID and the new record.
func AutoFixUIDs(conflicts []Conflict, list []models.Countdown, updateFunc func(uid string, cd models.Countdown) error) []FixAction {
	actions := []FixAction{}

	byUID := make(map[string]models.Countdown, len(list))
	for _, cd := range list {
		byUID[cd.UID] = cd
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictUnnormalizedUID || len(conflict.UIDs) != 1 {
			continue
		}

		uid := conflict.UIDs[0]
		cd, ok := byUID[uid]
		if !ok {
			continue // Record vanished since validation
		}

		normalized := models.NormalizeUID(uid)
		if _, taken := byUID[normalized]; taken {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Skipped %q: UID %s is already in use", uid, normalized),
				SourceConflict: conflict,
			})
			continue
		}

		cd.UID = normalized
		if err := updateFunc(uid, cd); err != nil {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to rekey %q to %s: %v", uid, normalized, err),
				SourceConflict: conflict,
			})
			continue
		}

		delete(byUID, uid)
		byUID[normalized] = cd
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Rekeyed countdown \"%s\" from %q to %s", cd.Name, uid, normalized),
			SourceConflict: conflict,
		})
	}

	return actions
}
