package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), NoStore())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRequestID))
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", rec.Body.String())
}
