package quota

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/imagica/server/internal/quota"
)

func setIdentity(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
	}
}

func newQuotaRouter(store *quota.MemoryStore, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := quota.Config{DailyLimit: 2, Window: 24 * time.Hour}

	router := gin.New()
	router.GET("/api/v1/quota", append(middleware, GetHandler(cfg, store))...)
	router.POST("/api/v1/quota", append(middleware, ConsumeHandler(cfg, store))...)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/api/v1/quota", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestGetQuota_FreshUser(t *testing.T) {
	router := newQuotaRouter(quota.NewMemoryStore(), setIdentity("user-1"))

	w := doRequest(t, router, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.RemainingGenerations)
	assert.Equal(t, 0, resp.UsedGenerations)
	assert.Equal(t, (24 * time.Hour).Milliseconds(), resp.TimeUntilReset)
	assert.NotEmpty(t, resp.NextResetTime)
}

func TestGetQuota_Unauthenticated(t *testing.T) {
	router := newQuotaRouter(quota.NewMemoryStore())

	w := doRequest(t, router, http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConsumeQuota_UntilExhausted(t *testing.T) {
	router := newQuotaRouter(quota.NewMemoryStore(), setIdentity("user-1"))

	w := doRequest(t, router, http.MethodPost)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.UsedGenerations)
	assert.Equal(t, 1, resp.RemainingGenerations)

	w = doRequest(t, router, http.MethodPost)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var limitResp LimitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &limitResp))
	assert.Equal(t, "Generation limit reached", limitResp.Error)
	assert.Positive(t, limitResp.TimeUntilReset)
}

func TestGetQuota_ReflectsExpiredRecords(t *testing.T) {
	store := quota.NewMemoryStore()

	require.NoError(t, store.Put(context.Background(), "user-1", []quota.Record{
		{Timestamp: time.Now().Add(-25 * time.Hour)},
		{Timestamp: time.Now().Add(-1 * time.Hour)},
	}))

	router := newQuotaRouter(store, setIdentity("user-1"))

	w := doRequest(t, router, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.UsedGenerations)
	assert.Equal(t, 1, resp.RemainingGenerations)
}
