package domain

import "time"

// RangeShape describes which bounds of a TimeWindow are present.
type RangeShape uint8

const (
	RangeUnbounded RangeShape = iota
	RangeFromOnly
	RangeToOnly
	RangeBounded
)

func (s RangeShape) String() string {
	switch s {
	case RangeBounded:
		return "range"
	case RangeFromOnly:
		return "after"
	case RangeToOnly:
		return "before"
	default:
		return "all"
	}
}

// TimeWindow is an optionally bounded, inclusive interval of instants
// expressed in the business timezone.
type TimeWindow struct {
	From *time.Time
	To   *time.Time
}

// Shape reports which bounds are present.
func (w TimeWindow) Shape() RangeShape {
	switch {
	case w.From != nil && w.To != nil:
		return RangeBounded
	case w.From != nil:
		return RangeFromOnly
	case w.To != nil:
		return RangeToOnly
	default:
		return RangeUnbounded
	}
}

// Validate rejects windows whose start lies after their end.
func (w TimeWindow) Validate() error {
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return ErrInvalidRange
	}
	return nil
}

// FromDate returns the calendar date of the window start.
func (w TimeWindow) FromDate() (time.Time, bool) {
	if w.From == nil {
		return time.Time{}, false
	}
	return DateOf(*w.From), true
}

// ToDate returns the calendar date of the window end.
func (w TimeWindow) ToDate() (time.Time, bool) {
	if w.To == nil {
		return time.Time{}, false
	}
	return DateOf(*w.To), true
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfDay is an alias of DateOf kept for readability at call sites.
func StartOfDay(t time.Time) time.Time {
	return DateOf(t)
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, t.Location())
}

// Scope selects either one client or every client.
type Scope struct {
	ClientID string
}

// GlobalScope returns the all-clients scope.
func GlobalScope() Scope { return Scope{} }

// ClientScope returns a scope restricted to one client.
func ClientScope(clientID string) Scope { return Scope{ClientID: clientID} }

// IsGlobal reports whether the scope spans all clients.
func (s Scope) IsGlobal() bool { return s.ClientID == "" }
