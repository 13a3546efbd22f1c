package web

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// sessionCookie names the browser session cookie
const sessionCookie = "session_id"

// SessionMiddleware gives every browser a session id, which keys its view state
func SessionMiddleware(c rweb.Context) error {
	sessionID, err := c.GetCookie(sessionCookie)
	if err != nil || !validSessionID(sessionID) {
		sessionID = uuid.NewString()
		if err := c.SetCookie(sessionCookie, sessionID); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
	}

	c.Set("session_id", sessionID)
	return c.Next()
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Pages are plain forms: no scripts, no third-party assets
	csp := []string{
		"default-src 'self'",
		"script-src 'none'",
		"style-src 'self'",
		"img-src 'self' data:",
		"form-action 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", c.Request().Header("X-Forwarded-For"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
