package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	hdrReqHeaders   = "Access-Control-Request-Headers"
	hdrAllowHeaders = "Access-Control-Allow-Headers"
)

// echoHeadersWriter 在写出状态码前把预检请求声明的 header 原样放行
type echoHeadersWriter struct {
	gin.ResponseWriter
	requested string
	applied   bool
}

func (w *echoHeadersWriter) apply() {
	if w.applied || w.Written() {
		return
	}
	w.applied = true
	h := w.Header()
	if h.Get(hdrAllowHeaders) != "" {
		h.Set(hdrAllowHeaders, w.requested)
		if !slices.Contains(h.Values("Vary"), hdrReqHeaders) {
			h.Add("Vary", hdrReqHeaders)
		}
	}
}

func (w *echoHeadersWriter) WriteHeader(code int) { w.apply(); w.ResponseWriter.WriteHeader(code) }
func (w *echoHeadersWriter) WriteHeaderNow()      { w.apply(); w.ResponseWriter.WriteHeaderNow() }

// EchoRequestHeaders 必须挂在 cors 之前：携带凭证时浏览器不认 "*"，
// 只能对允许的来源逐个回显 Access-Control-Request-Headers
func EchoRequestHeaders(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return func(c *gin.Context) {
		req := strings.TrimSpace(c.GetHeader(hdrReqHeaders))
		if c.Request.Method != http.MethodOptions || req == "" {
			c.Next()
			return
		}
		if _, ok := allowed[strings.ToLower(c.GetHeader("Origin"))]; !ok {
			c.Next()
			return
		}
		c.Writer = &echoHeadersWriter{ResponseWriter: c.Writer, requested: req}
		c.Next()
	}
}
