package quota

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"

	"codeberg.org/imagica/server/internal/logger"
)

const cookieNamePrefix = "user_generations_"

// CookieStore keeps each user's generation records in a signed httpOnly
// cookie on the requesting browser, so the server holds no quota state.
// This is the default backend.
type CookieStore struct {
	store     *sessions.CookieStore
	retention time.Duration
}

// creates a cookie-backed record store signed with the given secret
func NewCookieStore(secret []byte, retention time.Duration, secure bool) *CookieStore {
	if retention <= 0 {
		retention = DefaultRetention
	}

	store := sessions.NewCookieStore(secret)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(retention / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}

	return &CookieStore{store: store, retention: retention}
}

// binds the store to one HTTP exchange; Get reads the request's cookie and
// Put writes a Set-Cookie header on the response
func (s *CookieStore) ForRequest(w http.ResponseWriter, r *http.Request) Store {
	return &cookieRequestStore{parent: s, w: w, r: r}
}

type cookieRequestStore struct {
	parent *CookieStore
	w      http.ResponseWriter
	r      *http.Request
}

func (s *cookieRequestStore) Get(_ context.Context, userID string) ([]Record, error) {
	session, err := s.parent.store.Get(s.r, cookieName(userID))
	if err != nil {
		// tampered or undecodable cookie: fail open to zero usage
		logger.Warn("undecodable generation cookie, treating as empty",
			"user_id", userID,
			"error", err,
		)

		return nil, nil
	}

	raw, exists := session.Values["records"]
	if !exists {
		return nil, nil
	}

	encoded, ok := raw.(string)
	if !ok {
		return nil, nil
	}

	var records []Record

	if err := json.Unmarshal([]byte(encoded), &records); err != nil {
		logger.Warn("corrupt generation cookie, treating as empty",
			"user_id", userID,
			"error", err,
		)

		return nil, nil
	}

	return records, nil
}

func (s *cookieRequestStore) Put(_ context.Context, userID string, records []Record) error {
	session, err := s.parent.store.Get(s.r, cookieName(userID))
	if err != nil {
		// undecodable existing cookie is replaced wholesale
		session, _ = s.parent.store.New(s.r, cookieName(userID)) //nolint:errcheck // New only fails on decode, session is still usable
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return err
	}

	session.Values["records"] = string(encoded)

	return session.Save(s.r, s.w)
}

// cookie names cannot carry arbitrary identity-provider IDs verbatim
func cookieName(userID string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, userID)

	return cookieNamePrefix + sanitized
}
