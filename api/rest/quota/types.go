package quota

import (
	"time"

	"codeberg.org/imagica/server/internal/quota"
)

// Response reports the caller's current quota state. Durations are
// milliseconds, reset times RFC3339.
type Response struct {
	RemainingGenerations int    `json:"remainingGenerations"`
	UsedGenerations      int    `json:"usedGenerations"`
	TimeUntilReset       int64  `json:"timeUntilReset"`
	NextResetTime        string `json:"nextResetTime"`
}

// LimitResponse is returned with 429 when the quota is exhausted
type LimitResponse struct {
	Error          string `json:"error"`
	TimeUntilReset int64  `json:"timeUntilReset"`
	NextResetTime  string `json:"nextResetTime"`
}

func stateResponse(state quota.State) Response {
	return Response{
		RemainingGenerations: state.Remaining,
		UsedGenerations:      state.Used,
		TimeUntilReset:       state.TimeUntilReset.Milliseconds(),
		NextResetTime:        state.NextResetTime.Format(time.RFC3339),
	}
}

func limitResponse(limitErr *quota.LimitExceededError) LimitResponse {
	return LimitResponse{
		Error:          "Generation limit reached",
		TimeUntilReset: limitErr.TimeUntilReset.Milliseconds(),
		NextResetTime:  limitErr.NextResetTime.Format(time.RFC3339),
	}
}
