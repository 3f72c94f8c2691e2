package usecase

import (
	"fmt"
	"time"

	"github.com/iho/salesledger/internal/domain"
)

// TimeWindowResolver turns caller-supplied timestamps into windows fixed in
// the business timezone.
type TimeWindowResolver struct {
	business *time.Location
	caller   *time.Location
	clock    Clock
}

// NewTimeWindowResolver creates a new TimeWindowResolver. A nil clock falls
// back to the system clock.
func NewTimeWindowResolver(business, caller *time.Location, clock Clock) *TimeWindowResolver {
	if clock == nil {
		clock = SystemClock{}
	}
	if caller == nil {
		caller = time.UTC
	}
	return &TimeWindowResolver{
		business: business,
		caller:   caller,
		clock:    clock,
	}
}

// LoadTimeWindowResolver resolves zone names before building a resolver.
func LoadTimeWindowResolver(businessZone, callerZone string, clock Clock) (*TimeWindowResolver, error) {
	business, err := time.LoadLocation(businessZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone %q: %w", businessZone, err)
	}

	caller, err := time.LoadLocation(callerZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller timezone %q: %w", callerZone, err)
	}

	return NewTimeWindowResolver(business, caller, clock), nil
}

// ResolveInput carries the raw, possibly absent, window parameters.
type ResolveInput struct {
	From      *time.Time
	To        *time.Time
	DepositAt *time.Time
	DaysBack  int
}

// ResolvedWindow is the canonical window plus the converted deposit time.
type ResolvedWindow struct {
	DepositAt *time.Time
	Window    domain.TimeWindow
}

// Location returns the business timezone.
func (r *TimeWindowResolver) Location() *time.Location {
	return r.business
}

// ToBusiness converts an instant to the business timezone. The instant is
// preserved, only the wall clock changes.
func (r *TimeWindowResolver) ToBusiness(t time.Time) time.Time {
	return t.In(r.business)
}

// ParseCallerTime parses a wall-clock timestamp written in the caller's zone
// and returns the same instant in the business timezone.
func (r *TimeWindowResolver) ParseCallerTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(CallerTimeLayout, value, r.caller)
	if err != nil {
		return time.Time{}, err
	}
	return r.ToBusiness(t), nil
}

// Now returns the current instant in the business timezone.
func (r *TimeWindowResolver) Now() time.Time {
	return r.ToBusiness(r.clock.Now())
}

// Explicit converts the supplied bounds without applying any default.
func (r *TimeWindowResolver) Explicit(from, to *time.Time) (domain.TimeWindow, error) {
	w := domain.TimeWindow{
		From: r.convert(from),
		To:   r.convert(to),
	}
	if err := w.Validate(); err != nil {
		return domain.TimeWindow{}, err
	}
	return w, nil
}

// Resolve converts the supplied bounds and, when neither is present, falls
// back to the window [startOfDay(today - DaysBack), endOfDay(today)].
func (r *TimeWindowResolver) Resolve(in ResolveInput) (ResolvedWindow, error) {
	w, err := r.Explicit(in.From, in.To)
	if err != nil {
		return ResolvedWindow{}, err
	}

	if w.From == nil && w.To == nil {
		w = r.defaultWindow(in.DaysBack)
	}

	return ResolvedWindow{
		Window:    w,
		DepositAt: r.convert(in.DepositAt),
	}, nil
}

func (r *TimeWindowResolver) defaultWindow(daysBack int) domain.TimeWindow {
	if daysBack < 0 {
		daysBack = 0
	}

	today := domain.DateOf(r.Now())
	from := domain.StartOfDay(today.AddDate(0, 0, -daysBack))
	to := domain.EndOfDay(today)

	return domain.TimeWindow{From: &from, To: &to}
}

func (r *TimeWindowResolver) convert(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	converted := r.ToBusiness(*t)
	return &converted
}
