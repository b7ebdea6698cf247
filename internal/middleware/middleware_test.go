package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientTokenMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ClientTokenMiddleware("web-secret", "dash-secret"))
	r.GET("/", okHandler)

	tests := []struct {
		name       string
		clientType string
		token      string
		wantCode   int
	}{
		{"website token accepted", ClientTypeWebsite, "web-secret", http.StatusOK},
		{"dashboard token accepted", ClientTypeDashboard, "dash-secret", http.StatusOK},
		{"swapped tokens rejected", ClientTypeWebsite, "dash-secret", http.StatusForbidden},
		{"unknown client type", "mobile", "web-secret", http.StatusForbidden},
		{"missing token", ClientTypeWebsite, "", http.StatusForbidden},
		{"missing client type", "", "web-secret", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.clientType != "" {
				req.Header.Set(HeaderXClientType, tt.clientType)
			}
			if tt.token != "" {
				req.Header.Set(HeaderXClientToken, tt.token)
			}
			assert.Equal(t, tt.wantCode, serve(r, req).Code)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", okHandler)

	t.Run("generates when absent", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Header().Get(HeaderXRequestID))
		assert.NoError(t, err)
	})

	t.Run("echoes a valid client id", func(t *testing.T) {
		rid := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderXRequestID, rid)
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, rid, w.Header().Get(HeaderXRequestID))
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderXRequestID, "definitely-not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)
	})
}

type staticValidator struct {
	userID, role string
	err          error
}

func (v staticValidator) ValidateToken(_ context.Context, _ string) (string, string, error) {
	return v.userID, v.role, v.err
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(v TokenValidator) *gin.Engine {
		r := gin.New()
		r.Use(AuthMiddleware(v))
		r.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, UserIDFrom(c.Request.Context())+"/"+UserRoleFrom(c.Request.Context()))
		})
		return r
	}

	t.Run("valid token sets identity", func(t *testing.T) {
		r := newRouter(staticValidator{userID: "u-1", role: "admin"})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderAuthorization, "Bearer good")
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1/admin", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		r := newRouter(staticValidator{})
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		r := newRouter(staticValidator{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderAuthorization, "Basic abc")
		assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
	})

	t.Run("validator rejects", func(t *testing.T) {
		r := newRouter(staticValidator{err: errors.New("expired")})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderAuthorization, "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})
}
