package usecase

const (
	// DefaultBusinessTimezone is the zone dates are interpreted in.
	DefaultBusinessTimezone = "Asia/Kolkata"

	// CallerTimeLayout is the wire format of caller-supplied timestamps.
	CallerTimeLayout = "2006-01-02 15:04:05"
)
