// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides BearerAuth, a static-token gate for the cliente route
// group. The token comes from configuration; the comparison is constant
// time. An empty configured token disables the gate, which keeps local
// development and tests friction-free.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth returns a middleware that requires "Authorization: Bearer
// <token>" on every request. With an empty token the middleware is a
// pass-through.
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		supplied := bearerToken(c.GetHeader("Authorization"))
		if supplied == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": asString(rid),
				"code":       "unauthorized",
				"message":    "invalid or missing bearer token",
			})
			return
		}
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value,
// accepting any case for the "Bearer" scheme prefix.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
