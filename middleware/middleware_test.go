package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adhhak/config"
)

func newContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	c, w := newContext(t)
	RequestID()(c)

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestID_ReusesUpstreamID(t *testing.T) {
	c, w := newContext(t)
	c.Request.Header.Set(RequestIDHeader, "upstream-id")
	RequestID()(c)

	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "upstream-id", c.GetString(RequestIDHeader))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(c *gin.Context)
		want    string
	}{
		{
			name: "forwarded chain uses first hop",
			prepare: func(c *gin.Context) {
				c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			},
			want: "203.0.113.7",
		},
		{
			name: "single forwarded entry",
			prepare: func(c *gin.Context) {
				c.Request.Header.Set("X-Forwarded-For", "203.0.113.7")
			},
			want: "203.0.113.7",
		},
		{
			name: "real ip header",
			prepare: func(c *gin.Context) {
				c.Request.Header.Set("X-Real-IP", "198.51.100.4")
			},
			want: "198.51.100.4",
		},
		{
			name: "remote addr strips port",
			prepare: func(c *gin.Context) {
				c.Request.RemoteAddr = "192.0.2.1:51234"
			},
			want: "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(t)
			tt.prepare(c)
			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	config.AppConfig.MaxRequestsPerMin = 3

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.50:1000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(), "request %d within burst", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, do())
}
