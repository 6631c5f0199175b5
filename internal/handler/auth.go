package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration // zero means no exp claim
	BcryptCost int
	Production bool
	Log        *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int, production bool, log *logrus.Logger) *AuthHandler {
	var ttl time.Duration
	if ttlHours > 0 {
		ttl = time.Duration(ttlHours) * time.Hour
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   ttl,
		BcryptCost: bcryptCost,
		Production: production,
		Log:        log,
	}
}

// ---------- register ----------

type registerReq struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	UserName     string `json:"userName"`
	Password     string `json:"password"`
}

// Register runs after the strength and uniqueness gates. The unique
// indexes can still fire on a concurrent duplicate; that surfaces as a
// generic 400 instead of the per-field message from the gate.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
		return
	}

	req.EmailAddress = strings.TrimSpace(req.EmailAddress)
	req.UserName = strings.TrimSpace(req.UserName)

	if req.FirstName == "" || req.LastName == "" || req.EmailAddress == "" || req.UserName == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
		return
	}
	if err := util.ValidateEmail(req.EmailAddress); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid email format")
		return
	}
	if err := util.ValidateUsername(req.UserName); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username can only contain letters, numbers, and underscores")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		h.Log.WithError(err).Error("hash password")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		UserName:     req.UserName,
		Password:     hash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// a duplicate slipping past the gate lands here via the unique index;
		// anything else is an internal failure
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			h.Log.WithError(err).Warn("create user")
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Could not create user")
			return
		}
		h.Log.WithError(err).Error("create user")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Created(c, util.Response{
		"user": profileSubset(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Identifier   string `json:"identifier"`
	UserName     string `json:"userName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// Login accepts an identifier that may be either the email address or the
// username. Unknown identifier and wrong password answer with the same
// message so login cannot be used to probe for accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Identifier and password are required")
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.UserName
	}
	if identifier == "" {
		identifier = req.EmailAddress
	}
	identifier = strings.TrimSpace(identifier)

	if identifier == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Identifier and password are required")
		return
	}

	var user models.User
	err := h.DB.
		Where("(email_address = ? OR user_name = ?) AND is_deleted = ?", identifier, identifier, false).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Wrong login credentials")
		} else {
			h.Log.WithError(err).Error("find user")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return
	}

	if !util.CheckPassword(user.Password, req.Password) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Wrong login credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.FirstName, user.LastName, h.TokenTTL)
	if err != nil {
		h.Log.WithError(err).Error("sign token")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	h.setSessionCookie(c, token)

	util.Success(c, util.Response{
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"userName":     user.UserName,
		"emailAddress": user.EmailAddress,
	})
}

// setSessionCookie delivers the token as an HTTP-only cookie. In release
// mode the cookie is Secure and SameSite=None so the frontend can sit on
// another origin; in development it stays Lax over plain HTTP.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := 0
	if h.TokenTTL > 0 {
		maxAge = int(h.TokenTTL.Seconds())
	}
	if h.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.Production, true)
}

// profileSubset is what register, login and the profile routes expose.
// The password digest never leaves the handler layer.
func profileSubset(u *models.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"userName":       u.UserName,
		"emailAddress":   u.EmailAddress,
		"phoneNumber":    u.PhoneNumber,
		"bio":            u.Bio,
		"status":         u.Status,
		"secondaryEmail": u.SecondaryEmail,
		"profilePicture": u.ProfilePicture,
	}
}
