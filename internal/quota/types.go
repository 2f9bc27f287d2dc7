package quota

import "time"

// one entry per successful quota-consuming generation
type Record struct {
	Timestamp time.Time `json:"timestamp"`
}

// derived from the non-expired records on every read, never stored
type State struct {
	Used           int
	Remaining      int
	TimeUntilReset time.Duration
	NextResetTime  time.Time
}

// limiter policy knobs, passed in explicitly so the limiter stays testable
type Config struct {
	// generations allowed per rolling window
	DailyLimit int

	// rolling window length
	Window time.Duration

	// clock override for tests; defaults to time.Now
	Now func() time.Time
}

const (
	DefaultDailyLimit = 2
	DefaultWindow     = 24 * time.Hour

	// how long stored record sets are retained; longer than the quota
	// window purely for storage hygiene, never consulted by quota logic
	DefaultRetention = 7 * 24 * time.Hour
)
