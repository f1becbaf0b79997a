package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goktugdsert/Flight-Project/internal/rosterapi"
)

const sessionKey = "roster-session"

// BearerSession extracts the upstream access token from the Authorization
// header so handlers can forward it to the roster service. Requests without
// a bearer token are rejected before any handler runs.
func BearerSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing bearer token",
				},
			})
			return
		}
		c.Set(sessionKey, rosterapi.Session{AccessToken: strings.TrimSpace(token)})
		c.Next()
	}
}

// Session returns the session stored by BearerSession. The zero Session is
// returned on routes without the middleware.
func Session(c *gin.Context) rosterapi.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return rosterapi.Session{}
	}
	return v.(rosterapi.Session)
}
