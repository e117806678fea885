package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viewmark/viewmark/internal/log"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
)

const (
	correlationHeader = "X-Correlation-ID"
	corsAllowHeaders  = "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Correlation-ID"
	corsAllowMethods  = "GET, POST, OPTIONS"
)

func (routerService *RouterService) correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(correlationHeader))
		if id == "" {
			id = log.GenerateCorrelationID()
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id))
		c.Header(correlationHeader, id)
		c.Next()
	}
}

// loggerInjectionMiddleware stores a correlated logger for GetLogger.
func (routerService *RouterService) loggerInjectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := routerService.logger.WithCorrelationID(c.Request.Context())
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.LoggerKeyForContext, requestLogger))
		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		GetLogger(c).Info("HTTP request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	hsts := routerService.edge.HSTS
	hstsValue := hsts.header()

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		if hsts.Enabled && requestIsHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hstsValue)
		}
		c.Next()
	}
}

// requestIsHTTPS also trusts X-Forwarded-Proto for TLS terminated upstream.
func requestIsHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	limit := routerService.edge.MaxBodyBytes

	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				ErrorResult(http.StatusRequestEntityTooLarge, "Request payload too large", nil).ToJSON())
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// corsMiddleware only adds headers for allowed origins. A disallowed origin
// still reaches the handler; the browser enforces the missing headers.
func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	edge := routerService.edge

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !edge.allowsOrigin(origin) {
			routerService.logger.Debug("Cross-origin request without CORS grant", "origin", origin)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// timeoutMiddleware attaches the request deadline. A handler that overran it
// without writing anything is answered with 408 afterwards.
func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	timeout := routerService.requestTimeout

	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			GetLogger(c).Warn("Request deadline exceeded", "timeout", timeout)
			c.AbortWithStatusJSON(http.StatusRequestTimeout,
				ErrorResult(apperrors.StatusRequestTimeout, "Request timeout", nil).ToJSON())
		}
	}
}
