package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/imagica/server/internal/provider"
	"codeberg.org/imagica/server/internal/quota"
)

type fakeGenerator struct {
	outputs []provider.Output
	err     error
	calls   int
}

func (g *fakeGenerator) Generate(_ context.Context, _ provider.Request) ([]provider.Output, error) {
	g.calls++

	if g.err != nil {
		return nil, g.err
	}

	return g.outputs, nil
}

func setIdentity(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
	}
}

func newGenerateRouter(generator provider.Generator, store *quota.MemoryStore, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := quota.Config{DailyLimit: 2, Window: 24 * time.Hour}

	router := gin.New()
	handlers := append(middleware, Handler(generator, cfg, store))
	router.POST("/api/v1/generate", handlers...)

	return router
}

func postGenerate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestGenerate_Success(t *testing.T) {
	generator := &fakeGenerator{outputs: []provider.Output{
		{Kind: provider.OutputURL, URL: "https://example.com/out.webp"},
	}}
	store := quota.NewMemoryStore()
	router := newGenerateRouter(generator, store, setIdentity("user-1"))

	w := postGenerate(t, router, `{"prompt": "a red fox"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"https://example.com/out.webp"}, resp.ImageURLs)

	// one unit consumed
	records, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	generator := &fakeGenerator{}
	store := quota.NewMemoryStore()
	router := newGenerateRouter(generator, store, setIdentity("user-1"))

	w := postGenerate(t, router, `{"prompt": "   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Prompt is required", resp.Error)

	// rejected before any quota or provider work
	assert.Zero(t, generator.calls)

	records, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerate_InvalidBody(t *testing.T) {
	router := newGenerateRouter(&fakeGenerator{}, quota.NewMemoryStore(), setIdentity("user-1"))

	w := postGenerate(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_Unauthenticated(t *testing.T) {
	generator := &fakeGenerator{}
	router := newGenerateRouter(generator, quota.NewMemoryStore())

	w := postGenerate(t, router, `{"prompt": "a red fox"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, generator.calls)
}

func TestGenerate_QuotaExhausted(t *testing.T) {
	generator := &fakeGenerator{}
	store := quota.NewMemoryStore()

	now := time.Now()
	require.NoError(t, store.Put(context.Background(), "user-1", []quota.Record{
		{Timestamp: now.Add(-2 * time.Hour)},
		{Timestamp: now.Add(-1 * time.Hour)},
	}))

	router := newGenerateRouter(generator, store, setIdentity("user-1"))

	w := postGenerate(t, router, `{"prompt": "a red fox"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp RateLimitedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Generation limit reached", resp.Error)
	assert.Positive(t, resp.TimeUntilReset)
	assert.NotEmpty(t, resp.NextResetTime)

	assert.Zero(t, generator.calls)
}

func TestGenerate_ProviderFailureKeepsQuotaConsumed(t *testing.T) {
	generator := &fakeGenerator{err: provider.Classify(errors.New("API request failed with status 503"))}
	store := quota.NewMemoryStore()
	router := newGenerateRouter(generator, store, setIdentity("user-1"))

	w := postGenerate(t, router, `{"prompt": "a red fox"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Service temporarily unavailable. Please try again later.", resp.Error)

	// the failed attempt still counts for the day
	records, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGenerate_NoUsableImages(t *testing.T) {
	generator := &fakeGenerator{outputs: nil}
	router := newGenerateRouter(generator, quota.NewMemoryStore(), setIdentity("user-1"))

	w := postGenerate(t, router, `{"prompt": "a red fox"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate image. Please try again.", resp.Error)
}

func TestGenerate_ParametersReachProvider(t *testing.T) {
	var captured provider.Request

	generator := &capturingGenerator{captured: &captured}
	router := newGenerateRouter(generator, quota.NewMemoryStore(), setIdentity("user-1"))

	w := postGenerate(t, router, `{
		"prompt": "a red fox",
		"style": "watercolor",
		"negativePrompt": "blurry",
		"numberOfImages": 2,
		"aspectRatio": "portrait",
		"creativity": 0.7
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "a red fox", captured.Prompt)
	assert.Equal(t, "watercolor", captured.Style)
	assert.Equal(t, "blurry", captured.NegativePrompt)
	assert.Equal(t, 2, captured.NumOutputs)
	assert.Equal(t, "portrait", captured.AspectRatio)
	assert.Equal(t, 0.7, captured.Creativity)
}

type capturingGenerator struct {
	captured *provider.Request
}

func (g *capturingGenerator) Generate(_ context.Context, req provider.Request) ([]provider.Output, error) {
	*g.captured = req
	return []provider.Output{{Kind: provider.OutputURL, URL: "https://example.com/out.webp"}}, nil
}
