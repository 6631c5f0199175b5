package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BlogHandler serves ownership-scoped blog CRUD plus the public listing.
type BlogHandler struct {
	DB        *gorm.DB
	Log       *logrus.Logger
	sanitizer *bluemonday.Policy
}

func NewBlogHandler(db *gorm.DB, log *logrus.Logger) *BlogHandler {
	return &BlogHandler{
		DB:        db,
		Log:       log,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ---------- request/response shapes ----------

type createBlogReq struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=512"`
	Content     string `json:"content" binding:"required"`
}

type updateBlogReq struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=512"`
	Content     string `json:"content" binding:"required"`
}

type blogResp struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	AuthorID    uint   `json:"authorId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// publicBlogResp adds the author summary shown on the public listing.
type publicBlogResp struct {
	blogResp
	Author authorSummary `json:"author"`
}

type authorSummary struct {
	UserName       string `json:"userName"`
	ProfilePicture string `json:"profilePicture"`
}

func toBlogResp(b *models.Blog) blogResp {
	return blogResp{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Content:     b.Content,
		AuthorID:    b.AuthorID,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// ownedBlog fetches a blog by id, author and live flag in one query.
// An ownership miss and a genuinely absent record are indistinguishable
// to the caller.
func (h *BlogHandler) ownedBlog(blogID string, authorID uint) (*models.Blog, error) {
	id, err := strconv.ParseUint(blogID, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var blog models.Blog
	err = h.DB.
		Where("id = ? AND author_id = ? AND is_deleted = ?", id, authorID, false).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// ---------- handlers ----------

// CreateBlog persists a new blog owned by the authenticated user.
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	var req createBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Title and content are required")
		return
	}

	blog := models.Blog{
		Title:       req.Title,
		Description: h.sanitizer.Sanitize(req.Description),
		Content:     h.sanitizer.Sanitize(req.Content),
		AuthorID:    claims.UserID,
	}
	if err := h.DB.Create(&blog).Error; err != nil {
		h.Log.WithError(err).Error("create blog")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Created(c, util.Response{
		"blog": toBlogResp(&blog),
	})
}

// GetBlog returns one of the caller's own blogs. Misses answer 400 with
// the not-found wording, never 403.
func (h *BlogHandler) GetBlog(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	blog, err := h.ownedBlog(c.Param("blogId"), claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusBadRequest, util.CodeNotFound, "Post not found")
		} else {
			h.Log.WithError(err).Error("fetch blog")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error fetching the Blog")
		}
		return
	}

	util.Success(c, util.Response{
		"blog": toBlogResp(blog),
	})
}

// ListBlogs is the public feed: every non-deleted blog with a minimal
// author projection. No identity required.
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	var blogs []models.Blog
	err := h.DB.
		Preload("Author").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		h.Log.WithError(err).Error("list blogs")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]publicBlogResp, 0, len(blogs))
	for i := range blogs {
		out = append(out, publicBlogResp{
			blogResp: toBlogResp(&blogs[i]),
			Author: authorSummary{
				UserName:       blogs[i].Author.UserName,
				ProfilePicture: blogs[i].Author.ProfilePicture,
			},
		})
	}

	util.Success(c, util.Response{
		"blogs": out,
	})
}

// ListMyBlogs returns the caller's own non-deleted blogs.
func (h *BlogHandler) ListMyBlogs(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	var blogs []models.Blog
	err := h.DB.
		Where("author_id = ? AND is_deleted = ?", claims.UserID, false).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		h.Log.WithError(err).Error("list my blogs")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]blogResp, 0, len(blogs))
	for i := range blogs {
		out = append(out, toBlogResp(&blogs[i]))
	}

	util.Success(c, util.Response{
		"blogs": out,
	})
}

// UpdateBlog re-fetches by id+author+live before applying changes, so a
// non-owner can not tell the blog exists.
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	var req updateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Title and content are required")
		return
	}

	blog, err := h.ownedBlog(c.Param("blogId"), claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Post not found")
		} else {
			h.Log.WithError(err).Error("fetch blog")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return
	}

	blog.Title = req.Title
	blog.Description = h.sanitizer.Sanitize(req.Description)
	blog.Content = h.sanitizer.Sanitize(req.Content)
	updates := map[string]interface{}{
		"title":       blog.Title,
		"description": blog.Description,
		"content":     blog.Content,
	}
	if err := h.DB.Model(blog).Updates(updates).Error; err != nil {
		h.Log.WithError(err).Error("update blog")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Success(c, util.Response{
		"blog": toBlogResp(blog),
	})
}

// DeleteBlog flips the soft-delete flag after the same ownership
// pre-check. Deleted is terminal: there is no un-delete route.
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	blog, err := h.ownedBlog(c.Param("blogId"), claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Post not found")
		} else {
			h.Log.WithError(err).Error("fetch blog")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return
	}

	if err := h.DB.Model(blog).Update("is_deleted", true).Error; err != nil {
		h.Log.WithError(err).Error("delete blog")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Success(c, util.Response{
		"message": "Blog deleted successfully",
	})
}
