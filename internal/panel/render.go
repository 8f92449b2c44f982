package panel

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// Card is one rendered countdown.
type Card struct {
	UID    string
	Name   string
	Date   string
	Active bool
	Days   int
	// DaysLine is the remaining/elapsed line, or the inactive marker.
	DaysLine string
}

// ListView is the countdown list as displayed. Exactly one of Message
// and Cards is set.
type ListView struct {
	Message string
	Cards   []Card
}

// Lines renders the card as the plain text lines of the web card.
func (c Card) Lines() []string {
	return []string{
		c.Name,
		constants.DateLinePrefix + c.Date,
		constants.UIDLinePrefix + c.UID,
		c.DaysLine,
	}
}

// String renders the whole view as plain text.
func (v ListView) String() string {
	if v.Message != "" {
		return v.Message
	}
	blocks := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		blocks = append(blocks, strings.Join(c.Lines(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderList is the pure render function over a state snapshot.
func RenderList(s State, now time.Time) ListView {
	switch s.Phase {
	case ListLoading:
		return ListView{Message: constants.ListLoading}
	case ListFailed:
		return ListView{Message: constants.ListError}
	}
	if len(s.Countdowns) == 0 {
		return ListView{Message: constants.ListEmpty}
	}

	cards := make([]Card, 0, len(s.Countdowns))
	for _, c := range s.Countdowns {
		card := Card{
			UID:    c.UID,
			Name:   c.Name,
			Date:   FormatDate(c.TargetDate),
			Active: c.Active,
		}
		if !c.Active {
			card.DaysLine = constants.InactiveMarker
			cards = append(cards, card)
			continue
		}
		days, err := DaysRemaining(c.TargetDate, now)
		if err != nil {
			// An unparseable date has no day count; show the raw value.
			card.DaysLine = fmt.Sprintf("⏱️ %s", c.TargetDate)
			cards = append(cards, card)
			continue
		}
		card.Days = days
		word := constants.DaysRemainingWord
		if days < 0 {
			word = constants.DaysElapsedWord
		}
		card.DaysLine = fmt.Sprintf(constants.DaysLineFormat, days, word)
		cards = append(cards, card)
	}
	return ListView{Cards: cards}
}

// DaysRemaining returns the whole calendar days from now's date to
// targetDate, both taken in now's location. Today is 0, yesterday -1.
func DaysRemaining(targetDate string, now time.Time) (int, error) {
	target, err := utils.ParseDateInLocation(targetDate, now.Location())
	if err != nil {
		return 0, err
	}
	return utils.CalendarDaysBetween(utils.StartOfDay(now), target), nil
}

// FormatDate renders a YYYY-MM-DD date the German long way
// ("14. März 2026"). Anything else is returned unchanged.
func FormatDate(dateStr string) string {
	formatted, err := utils.FormatLongDateDE(dateStr)
	if err != nil {
		return dateStr
	}
	return formatted
}
