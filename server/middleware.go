/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// bodyCapturingWriter wraps gin.ResponseWriter to capture the response body
// for verbose request/response logging.
type bodyCapturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCapturingWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// withLogging returns a gin middleware that, when verbose is non-zero, logs
// each request through slog. At verbose >= 2 it also logs the request and
// response bodies.
func (s *Server) withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.verbose == 0 {
			c.Next()
			return
		}

		start := time.Now()

		var reqBodyData []byte
		if s.verbose >= 2 && c.Request.Body != nil {
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			reqBodyData = data
		}

		wrapped := &bodyCapturingWriter{ResponseWriter: c.Writer}
		c.Writer = wrapped

		c.Next()

		duration := time.Since(start)
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", float64(duration.Microseconds())/1000.0,
		)

		if s.verbose >= 2 {
			if len(reqBodyData) > 0 {
				slog.Debug("request body", "body", formatMaybeJSON(reqBodyData))
			}
			if respBody := wrapped.body.Bytes(); len(respBody) > 0 {
				slog.Debug("response body", "body", formatMaybeJSON(respBody))
			}
		}
	}
}

func formatMaybeJSON(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		var v any
		if err := json.Unmarshal(trimmed, &v); err == nil {
			pretty, err := json.MarshalIndent(v, "", "  ")
			if err == nil {
				return string(pretty)
			}
		}
	}
	return string(data)
}
