package router

import (
	"campuslink/internal/handlers"
	"campuslink/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	reportHandler := handlers.NewReportHandler()
	categoryHandler := handlers.NewCategoryHandler()
	imageHandler := handlers.NewImageHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.GET("/posts", postHandler.List)
	api.GET("/posts/search", postHandler.Search)
	api.GET("/posts/:pid", postHandler.Detail)
	api.GET("/posts/:pid/comments", commentHandler.List)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:name/posts", postHandler.ListByCategory)
	api.GET("/users/:id/posts", postHandler.ListByUser)
	api.GET("/reports/categories", reportHandler.Categories)

	api.GET("/auth/captcha", authHandler.Captcha)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/verify", authHandler.VerifyEmail)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/google", authHandler.GoogleLogin)
	api.GET("/auth/google/callback", authHandler.GoogleCallback)

	// Member routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:pid", postHandler.Update)
		authorized.DELETE("/posts/:pid", postHandler.Delete)
		authorized.POST("/posts/suggest-category", postHandler.SuggestCategory)

		authorized.POST("/posts/:pid/comments", commentHandler.Create)
		authorized.PUT("/posts/:pid/comments", commentHandler.Update)
		authorized.DELETE("/posts/:pid/comments", commentHandler.Delete)

		authorized.POST("/votes/:type/:id", voteHandler.Cast)
		authorized.GET("/votes/:type/:id", voteHandler.Get)

		authorized.POST("/reports", reportHandler.Create)

		authorized.POST("/images", imageHandler.Upload)
	}

	// Moderation routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/reports", reportHandler.List)
		admin.POST("/reports/:id/dismiss", reportHandler.Dismiss)
		admin.GET("/posts/suspended", adminHandler.ListSuspended)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
		admin.POST("/users/:id/unban", adminHandler.UnbanUser)
		admin.GET("/users/lookup", adminHandler.LookupUser)
	}
}
