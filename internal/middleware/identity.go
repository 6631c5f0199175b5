package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidateUsernameEmail rejects registration when the email address or
// username already belongs to a non-deleted user, with a per-field
// message. Check-then-create is not atomic; the unique indexes on the
// users table are the last-resort guard for the race window.
func ValidateUsernameEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			EmailAddress string `json:"emailAddress"`
			UserName     string `json:"userName"`
		}
		if err := json.Unmarshal(readBody(c), &body); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
			c.Abort()
			return
		}

		var count int64
		if err := db.Model(&models.User{}).
			Where("email_address = ? AND is_deleted = ?", body.EmailAddress, false).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error validating username and email")
			c.Abort()
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Email address already taken")
			c.Abort()
			return
		}

		if err := db.Model(&models.User{}).
			Where("user_name = ? AND is_deleted = ?", body.UserName, false).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error validating username and email")
			c.Abort()
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username is already taken")
			c.Abort()
			return
		}

		c.Next()
	}
}
