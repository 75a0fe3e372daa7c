package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// RequireAuth runs the gate on the Authorization header and stores the
// principal for handlers. Every rejection looks the same to the caller.
func RequireAuth(svc AuthService, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, err := svc.Authenticate(ctx, c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			reason := "unknown"
			var rej *services.Rejection
			if errors.As(err, &rej) {
				reason = string(rej.Reason)
			}
			l.Info(ctx, "request rejected", "path", c.FullPath(), "reason", reason)
			abortUnauthorized(c)
			return
		}

		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(services.WithPrincipal(ctx, p))
		c.Next()
	}
}

// GetPrincipal returns the principal set by RequireAuth.
func GetPrincipal(c *gin.Context) (*services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*services.Principal)
	return p, ok
}

// RequestLogger logs one line per request.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
