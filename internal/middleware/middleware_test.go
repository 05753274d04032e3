package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAuthenticator struct {
	AuthenticateFn func(ctx context.Context, token string) (domain.Session, error)
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	return f.AuthenticateFn(ctx, token)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestSessionMiddleware(t *testing.T) {
	auth := &fakeAuthenticator{
		AuthenticateFn: func(ctx context.Context, token string) (domain.Session, error) {
			if token != "good" {
				return domain.Session{}, apperror.ErrUnauthorized
			}
			return domain.Session{ID: "s1", EmployeeID: 7, Email: "admin@company.com"}, nil
		},
	}

	r := newRouter()
	r.GET("/me", SessionMiddleware(auth, "session_token"), func(c *gin.Context) {
		sess, ok := contextutil.GetSession(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": sess.EmployeeID, "sid": c.GetString("session_id")})
	})

	t.Run("bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"sid":"s1"}`, w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "good"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
	})

	t.Run("rejected token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bad")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestContextLogger_PropagatesRequestID(t *testing.T) {
	r := newRouter()
	r.Use(RequestID(), ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		assert.NotNil(t, contextutil.GetLogger(ctx, nil))
		c.String(http.StatusOK, contextutil.GetRequestID(ctx))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "REQ-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "REQ-42", w.Body.String())
	assert.Equal(t, "REQ-42", w.Header().Get("X-Request-ID"))
}

func TestContextLogger_TagsRequestAndSession(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter()
	r.Use(func(c *gin.Context) {
		ctx := contextutil.WithSession(c.Request.Context(), domain.Session{ID: "s1", EmployeeID: 7})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(ContextLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		contextutil.GetLogger(c.Request.Context(), nil).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "REQ-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "REQ-7", fields["request_id"])
	assert.Equal(t, int64(7), fields["employee_id"])
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter()
	r.GET("/x", RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitBySession_SkipsAnonymous(t *testing.T) {
	r := newRouter()
	r.GET("/x", RateLimitBySession(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestIdempotency(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cacheKey := IdempotencyKey("/employees", "", "k1")
	lockKey := cacheKey + ":lock"

	calls := 0
	r := newRouter()
	r.POST("/employees", Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": calls})
	})

	stored, err := json.Marshal(storedResponse{
		Status:      http.StatusCreated,
		ContentType: "application/json; charset=utf-8",
		Body:        []byte(`{"id":1}`),
	})
	require.NoError(t, err)

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", nil)
		req.Header.Set(IdempotencyHeader, "k1")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request runs the handler and stores the response", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, stored, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := send()

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed without running the handler", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := send()

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"id":1}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get(ReplayHeader))
		assert.Equal(t, 1, calls)
	})

	t.Run("duplicate while in flight", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := send()

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key passes straight through", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 2, calls)
	})
}
