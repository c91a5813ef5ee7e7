package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rizal-api/internal/core/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App:  config.App{Name: "COM-PSU-Rizal API", Env: "test"},
		CORS: config.CORS{AllowOrigins: []string{"http://localhost:3001", "http://localhost:3002"}},
		Limits: config.Limits{
			RPS: 1000, Burst: 1000, MaxInFlight: 10, MaxBodyBytes: 1 << 20, RequestTimeoutS: 5,
		},
	}
}

type orderMod struct {
	name string
	prio int
	log  *[]string
}

func (m orderMod) MountAPI(g *gin.RouterGroup) {
	*m.log = append(*m.log, m.name)
	g.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, m.name) })
}

func (m orderMod) Priority() int { return m.prio }

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewAPIEngine_RootAndHealth(t *testing.T) {
	r := NewAPIEngine(zap.NewNop(), testConfig())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"COM-PSU-Rizal API","status":"running"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewAPIEngine_CORS(t *testing.T) {
	r := NewAPIEngine(zap.NewNop(), testConfig())

	for _, origin := range []string{"http://localhost:3001", "http://localhost:3002"} {
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		w := serve(r, req)
		assert.Less(t, w.Code, 300)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMountAll_PriorityOrder(t *testing.T) {
	var order []string
	r := NewAPIEngine(zap.NewNop(), testConfig(),
		orderMod{name: "b", prio: 20, log: &order},
		orderMod{name: "a", prio: 10, log: &order},
	)
	assert.Equal(t, []string{"a", "b"}, order)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/b", nil))
	assert.Equal(t, "b", w.Body.String())
}

func TestNewAPIEngine_PreflightEchoesRequestedHeaders(t *testing.T) {
	r := NewAPIEngine(zap.NewNop(), testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-client-version")
	w := serve(r, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:3001", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "content-type,x-client-version", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, w.Header().Values("Vary"), "Access-Control-Request-Headers")

	// 未放行的来源不回显
	req = httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-client-version")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Headers"))
}
