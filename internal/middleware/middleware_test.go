package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"buildhook/pkg/log"
)

func newRouter(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.RequestID())
	r.GET("/admin", m.Auth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAuth(t *testing.T) {
	tests := map[string]struct {
		key    string
		header string
		want   int
	}{
		"valid key":          {key: "s3cret", header: "Bearer s3cret", want: http.StatusOK},
		"wrong key":          {key: "s3cret", header: "Bearer nope", want: http.StatusUnauthorized},
		"missing header":     {key: "s3cret", header: "", want: http.StatusUnauthorized},
		"wrong scheme":       {key: "s3cret", header: "Basic s3cret", want: http.StatusUnauthorized},
		"auth disabled":      {key: "", header: "", want: http.StatusOK},
		"prefix of real key": {key: "s3cret", header: "Bearer s3c", want: http.StatusUnauthorized},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := newRouter(New(log.NewNop(), tc.key))
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(New(log.NewNop(), ""))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("expected a generated request id")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("request id = %q", got)
		}
	})
}
