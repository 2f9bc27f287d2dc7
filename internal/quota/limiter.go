package quota

import (
	"context"
	"sort"
	"time"

	"codeberg.org/imagica/server/internal/logger"
)

// enforces a sliding-window daily generation quota on top of a Store
type Limiter struct {
	cfg   Config
	store Store
}

// creates a limiter with the given policy and backing store
func NewLimiter(cfg Config, store Store) *Limiter {
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = DefaultDailyLimit
	}

	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Limiter{cfg: cfg, store: store}
}

// returns the user's current quota state. Reading has a side effect: records
// older than the window are pruned and the trimmed set is persisted.
func (l *Limiter) State(ctx context.Context, userID string) (State, error) {
	records := l.prune(ctx, userID)
	return l.computeState(records), nil
}

// consumes one unit of quota, or returns *LimitExceededError when the window
// is full. The reset time reported on rejection is derived from the oldest
// surviving record, not the newest.
func (l *Limiter) Consume(ctx context.Context, userID string) (State, error) {
	records := l.prune(ctx, userID)
	now := l.cfg.Now()

	if len(records) >= l.cfg.DailyLimit {
		resetAt := records[0].Timestamp.Add(l.cfg.Window)

		untilReset := resetAt.Sub(now)
		if untilReset < 0 {
			untilReset = 0
		}

		return State{}, &LimitExceededError{
			TimeUntilReset: untilReset,
			NextResetTime:  now.Add(untilReset),
		}
	}

	records = append(records, Record{Timestamp: now})

	if err := l.store.Put(ctx, userID, records); err != nil {
		return State{}, err
	}

	return l.computeState(records), nil
}

// loads the user's records, drops expired entries, persists the trimmed set
// and returns it sorted by ascending timestamp. Store failures fail open to
// an empty set so a broken backend cannot lock users out.
func (l *Limiter) prune(ctx context.Context, userID string) []Record {
	records, err := l.store.Get(ctx, userID)
	if err != nil {
		logger.Warn("failed to load generation records, treating as empty",
			"user_id", userID,
			"error", err,
		)

		records = nil
	}

	now := l.cfg.Now()
	valid := make([]Record, 0, len(records))

	for _, record := range records {
		if now.Sub(record.Timestamp) < l.cfg.Window {
			valid = append(valid, record)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Timestamp.Before(valid[j].Timestamp)
	})

	if len(valid) != len(records) {
		if err := l.store.Put(ctx, userID, valid); err != nil {
			logger.Warn("failed to persist pruned generation records",
				"user_id", userID,
				"error", err,
			)
		}
	}

	return valid
}

func (l *Limiter) computeState(records []Record) State {
	now := l.cfg.Now()
	used := len(records)

	remaining := l.cfg.DailyLimit - used
	if remaining < 0 {
		remaining = 0
	}

	untilReset := l.cfg.Window

	if used > 0 {
		untilReset = records[0].Timestamp.Add(l.cfg.Window).Sub(now)
		if untilReset < 0 {
			untilReset = 0
		}
	}

	return State{
		Used:           used,
		Remaining:      remaining,
		TimeUntilReset: untilReset,
		NextResetTime:  now.Add(untilReset),
	}
}
