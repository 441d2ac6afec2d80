package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const auditBodyLimit = 16384

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < auditBodyLimit {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应, 上传文件和登录凭证不落日志
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody := "[omitted]"
		if c.Request.Body != nil && !skipRequestBody(c.Request) {
			reqBody = peekBody(c.Request)
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", w.body.String()),
		)
	}
}

// peekBody 只读取前 auditBodyLimit 字节用于日志, 已读部分拼回请求体, 大小限制交给下游
func peekBody(r *http.Request) string {
	raw, _ := io.ReadAll(io.LimitReader(r.Body, auditBodyLimit+1))
	r.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(raw), r.Body),
		Closer: r.Body,
	}
	if len(raw) > auditBodyLimit {
		return string(raw[:auditBodyLimit]) + "...[truncated]"
	}
	return string(raw)
}

type readCloser struct {
	io.Reader
	io.Closer
}

func skipRequestBody(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return true
	}
	return r.Method == http.MethodPost && r.URL.Path == LoginPath
}
