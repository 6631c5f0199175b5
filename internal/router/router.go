package router

import (
	"net/http"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/config"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/handler"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, CORS and the route table.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours,
		cfg.Security.BcryptCost, cfg.Production(), log)
	blogHandler := handler.NewBlogHandler(db, log)
	profileHandler := handler.NewProfileHandler(db, cfg.Security.BcryptCost,
		cfg.Upload.Dir, cfg.Upload.MaxSizeMB, log)
	exportHandler := handler.NewExportHandler(db, log)

	// registration runs through the strength and uniqueness gates in order
	r.POST("/auth/register",
		middleware.CheckPasswordStrength(),
		middleware.ValidateUsernameEmail(db),
		authHandler.Register,
	)
	r.POST("/auth/login", authHandler.Login)

	// public feed
	r.GET("/blogs", blogHandler.ListBlogs)

	// everything below requires a valid session cookie
	verify := middleware.VerifyUser(jwtSecret)

	r.POST("/auth/CreateBlogs", verify, blogHandler.CreateBlog)
	r.GET("/getBlog/:blogId", verify, blogHandler.GetBlog)
	r.PUT("/blogs/:blogId", verify, blogHandler.UpdateBlog)
	r.DELETE("/blogs/:blogId", verify, blogHandler.DeleteBlog)
	r.GET("/my-blogs", verify, blogHandler.ListMyBlogs)
	r.GET("/my-blogs/export", verify, exportHandler.ExportMyBlogs)

	r.GET("/users/profile", verify, profileHandler.GetProfile)
	r.PUT("/users/update-profile", verify, profileHandler.UpdateProfile)

	return r
}
