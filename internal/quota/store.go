package quota

import (
	"context"
	"net/http"
)

// Store persists per-user generation records. Implementations must treat a
// corrupt or unparsable stored set as empty rather than returning an error,
// so storage corruption can never permanently lock a user out.
type Store interface {
	Get(ctx context.Context, userID string) ([]Record, error)
	Put(ctx context.Context, userID string, records []Record) error
}

// Provider yields the Store bound to the current HTTP exchange. Server-side
// backends (memory, redis) ignore the request and return a shared store; the
// cookie backend reads and writes the requesting user's cookies.
type Provider interface {
	ForRequest(w http.ResponseWriter, r *http.Request) Store
}
