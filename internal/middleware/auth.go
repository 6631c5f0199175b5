package middleware

import (
	"net/http"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the fixed cookie carrying the session token.
const SessionCookieName = "BlogitAuthToken"

// context key for the verified claims
const claimsKey = "authClaims"

// VerifyUser extracts the session token from the cookie jar and verifies
// its signature. Absent, malformed and tampered tokens all fail closed
// with the same 401 message. On success the decoded claims are attached
// to the gin context; no database lookup happens here.
func VerifyUser(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims set by VerifyUser, or nil when the
// route was reached without the middleware.
func CurrentClaims(c *gin.Context) *util.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*util.Claims)
	if !ok {
		return nil
	}
	return claims
}
