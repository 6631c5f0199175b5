package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	DB         *gorm.DB
	BcryptCost int
	UploadDir  string
	MaxUpload  int64 // bytes
	Log        *logrus.Logger
}

func NewProfileHandler(db *gorm.DB, bcryptCost int, uploadDir string, maxUploadMB int64, log *logrus.Logger) *ProfileHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &ProfileHandler{
		DB:         db,
		BcryptCost: bcryptCost,
		UploadDir:  uploadDir,
		MaxUpload:  maxUploadMB << 20,
		Log:        log,
	}
}

// currentUser loads the authenticated user's record. The token only
// carries claims, so profile routes hit the database here.
func (h *ProfileHandler) currentUser(c *gin.Context) (*models.User, bool) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return nil, false
	}

	var user models.User
	err := h.DB.Where("id = ? AND is_deleted = ?", claims.UserID, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "User not found")
		} else {
			h.Log.WithError(err).Error("find user")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return nil, false
	}
	return &user, true
}

// GetProfile returns the caller's profile subset.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": profileSubset(user),
	})
}

// UpdateProfile applies profile field changes from a multipart form, with
// an optional profile photo and an optional password rotation. Rotation
// requires the current password; the new one goes through the same
// strength gate as registration.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	emailAddress := strings.TrimSpace(c.PostForm("emailAddress"))
	userName := strings.TrimSpace(c.PostForm("userName"))
	secondaryEmail := strings.TrimSpace(c.PostForm("secondaryEmail"))

	if firstName == "" || lastName == "" || emailAddress == "" || userName == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Required fields are missing")
		return
	}
	if err := util.ValidateEmail(emailAddress); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid email format")
		return
	}
	if secondaryEmail != "" {
		if err := util.ValidateEmail(secondaryEmail); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid secondary email format")
			return
		}
	}
	if err := util.ValidateUsername(userName); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username can only contain letters, numbers, and underscores")
		return
	}

	// changed email/username must stay unique among non-deleted users
	if emailAddress != user.EmailAddress {
		if taken, err := h.identityTaken("email_address", emailAddress, user.ID); err != nil {
			h.Log.WithError(err).Error("check email")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		} else if taken {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Email address already taken")
			return
		}
	}
	if userName != user.UserName {
		if taken, err := h.identityTaken("user_name", userName, user.ID); err != nil {
			h.Log.WithError(err).Error("check username")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		} else if taken {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username is already taken")
			return
		}
	}

	updates := map[string]interface{}{
		"first_name":      firstName,
		"last_name":       lastName,
		"email_address":   emailAddress,
		"user_name":       userName,
		"phone_number":    strings.TrimSpace(c.PostForm("phoneNumber")),
		"bio":             strings.TrimSpace(c.PostForm("bio")),
		"status":          strings.TrimSpace(c.PostForm("status")),
		"secondary_email": secondaryEmail,
	}

	// optional password rotation
	newPassword := c.PostForm("newPassword")
	if newPassword != "" {
		currentPassword := c.PostForm("currentPassword")
		if !util.CheckPassword(user.Password, currentPassword) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Current password is incorrect")
			return
		}
		if !util.StrongPassword(newPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Password is too weak")
			return
		}
		hash, err := util.HashPassword(newPassword, h.BcryptCost)
		if err != nil {
			h.Log.WithError(err).Error("hash password")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		}
		updates["password"] = hash
	}

	// optional profile photo
	var photoPath string
	if file, err := c.FormFile("profilePicture"); err == nil && file != nil {
		photoPath, err = util.SaveProfileImage(file, h.UploadDir, h.MaxUpload)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid profile picture: "+err.Error())
			return
		}
		updates["profile_picture"] = photoPath
	}

	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		// don't leave an orphan file behind when the record update fails
		if photoPath != "" {
			os.Remove(photoPath)
		}
		h.Log.WithError(err).Error("update profile")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.EmailAddress = emailAddress
	user.UserName = userName
	user.PhoneNumber = updates["phone_number"].(string)
	user.Bio = updates["bio"].(string)
	user.Status = updates["status"].(string)
	user.SecondaryEmail = secondaryEmail
	if p, ok := updates["profile_picture"].(string); ok {
		user.ProfilePicture = p
	}

	util.Success(c, util.Response{
		"user": profileSubset(user),
	})
}

func (h *ProfileHandler) identityTaken(column, value string, selfID uint) (bool, error) {
	var count int64
	err := h.DB.Model(&models.User{}).
		Where(column+" = ? AND is_deleted = ? AND id <> ?", value, false, selfID).
		Count(&count).Error
	return count > 0, err
}
