package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"forum404/internal/config"
	"forum404/internal/handler"
	"forum404/internal/middleware"
	"forum404/internal/pkg"
	"forum404/internal/service"
)

func InitRouter(db *gorm.DB, cfg *config.Config, store pkg.FileStore, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}

	userSvc := service.NewUserService(db, smtpCfg)
	uploadSvc := service.NewUploadService(db, store)

	auth := handler.NewAuthHandler(userSvc)
	user := handler.NewUserHandler(userSvc, uploadSvc)
	category := handler.NewCategoryHandler(service.NewCategoryService(db))
	topic := handler.NewTopicHandler(service.NewTopicService(db))
	post := handler.NewPostHandler(service.NewPostService(db))
	follow := handler.NewFollowHandler(service.NewFollowService(db))
	saved := handler.NewSavedTopicHandler(service.NewSavedTopicService(db))
	search := handler.NewSearchHandler(service.NewSearchService(db))
	subscription := handler.NewSubscriptionHandler(service.NewSubscriptionService(db))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/forget-password", auth.ForgetPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
	}

	authdAuthGroup := api.Group("/auth")
	authdAuthGroup.Use(middleware.AuthMiddleware())
	{
		authdAuthGroup.POST("/logout", auth.Logout)
		authdAuthGroup.POST("/change-password", auth.ChangePassword)
	}

	tokenGroup := api.Group("/token")
	{
		tokenGroup.POST("/refresh", auth.TokenRefresh)
	}

	// Public reads.
	api.GET("/users", user.Get)
	api.GET("/category", category.List)
	api.GET("/topic", topic.List)
	api.GET("/post", post.List)
	api.GET("/saved-topics", saved.List)
	api.GET("/search", search.Search)

	// Everything that writes requires a live session.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/users", user.Create)
		authed.PATCH("/users", user.Update)
		authed.POST("/users/profile-picture", user.UploadProfilePicture)

		authed.POST("/category", category.Create)

		authed.POST("/topic", topic.Create)
		authed.PATCH("/topic", topic.Patch)
		authed.DELETE("/topic", topic.Delete)

		authed.POST("/post", post.Create)
		authed.DELETE("/post", post.Delete)

		authed.GET("/following", follow.Get)
		authed.POST("/following", follow.Create)
		authed.DELETE("/following", follow.Delete)

		authed.PATCH("/saved-topics", saved.Patch)

		authed.GET("/subscriptions", subscription.List)
		authed.POST("/subscriptions", subscription.Create)
	}

	return r
}
