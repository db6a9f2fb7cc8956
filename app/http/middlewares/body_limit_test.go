package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBodyLimitWithLogger(t *testing.T) {
	r := newBodyRouter(BodyLimit(64), Logger())

	rec := post(r, `{"name":"张三"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(r, `{"name":"`+strings.Repeat("张", 100)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestBodyLimitBind(t *testing.T) {
	r := newBodyRouter(BodyLimit(64))

	rec := post(r, `{"name":"`+strings.Repeat("a", 200)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
