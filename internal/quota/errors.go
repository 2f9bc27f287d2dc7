package quota

import (
	"errors"
	"fmt"
	"time"
)

// returned by Consume when the user has exhausted the rolling window quota.
// The reset clock is anchored to the oldest surviving record, so capacity
// frees up incrementally as old records age out.
type LimitExceededError struct {
	TimeUntilReset time.Duration
	NextResetTime  time.Time
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("generation limit reached, resets in %s", e.TimeUntilReset)
}

// checks whether an error is a quota exhaustion error
func AsLimitExceeded(err error) (*LimitExceededError, bool) {
	var limitErr *LimitExceededError
	if errors.As(err, &limitErr) {
		return limitErr, true
	}

	return nil, false
}
