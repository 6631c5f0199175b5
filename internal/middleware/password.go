package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
)

// readBody drains and restores the request body so the downstream
// handler can bind it again.
func readBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	bodyBytes, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return bodyBytes
}

// CheckPasswordStrength rejects registration attempts whose password
// scores below the accepted zxcvbn threshold. Runs before the uniqueness
// gate so no user data is touched for weak passwords.
func CheckPasswordStrength() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.Unmarshal(readBody(c), &body); err != nil || body.Password == "" {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
			c.Abort()
			return
		}

		if !util.StrongPassword(body.Password) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Password is too weak")
			c.Abort()
			return
		}

		c.Next()
	}
}
