package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// newIdempotentRouter wires the middleware in front of a terminal handler
// that completes the loop the way a write handler does: cache the response
// payload, then release the lock.
func newIdempotentRouter(rdb *redis.Client, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leaves",
		func(c *gin.Context) { c.Set("user_id", "emp-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			*hits++
			lockKey, _ := c.Get("idempotency_lock_key")
			cacheKey, _ := c.Get("idempotency_cache_key")
			if lk, ok := lockKey.(string); ok && lk != "" {
				defer rdb.Del(c.Request.Context(), lk)
			}
			if ck, ok := cacheKey.(string); ok && ck != "" {
				_ = rdb.Set(c.Request.Context(), ck, []byte(`{"id":"lr-1"}`), 24*time.Hour).Err()
			}
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"id": "lr-1"}})
		},
	)
	return r
}

func TestIdempotency(t *testing.T) {
	cacheKey := "idemp:/leaves:emp-1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("success first request locks, runs and caches", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		rmock.ExpectGet(cacheKey).RedisNil()
		rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		rmock.ExpectSet(cacheKey, []byte(`{"id":"lr-1"}`), 24*time.Hour).SetVal("OK")
		rmock.ExpectDel(lockKey).SetVal(1)

		hits := 0
		r := newIdempotentRouter(rdb, &hits)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, hits)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("success repeated key replays cached response", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		rmock.ExpectGet(cacheKey).SetVal(`{"id":"lr-1"}`)

		hits := 0
		r := newIdempotentRouter(rdb, &hits)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, hits)
		assert.Contains(t, w.Body.String(), `"id":"lr-1"`)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("negative duplicate rejected while lock is held", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		rmock.ExpectGet(cacheKey).RedisNil()
		rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		hits := 0
		r := newIdempotentRouter(rdb, &hits)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, hits)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("success request without key passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()

		hits := 0
		r := newIdempotentRouter(rdb, &hits)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, hits)
	})
}
