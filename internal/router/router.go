package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/handler"
	"github.com/user/cinecritic/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 公开接口 ====================
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.POST("/users", h.Register)

	// ==================== 需要登录 ====================
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(h.Services.Auth))

	users := authed.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me", h.Me)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id/role", h.ChangeRole)
	}

	movies := authed.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.POST("", h.AddMovie)
		movies.GET("/:id", h.GetMovie)
		movies.POST("/:id/poster", h.UploadPoster)
		movies.GET("/:id/poster", h.GetPoster)
	}

	reviews := authed.Group("/reviews")
	{
		reviews.POST("", h.AddReview)
		reviews.GET("/movie/:movieId", h.MovieReviews)
		reviews.GET("/:id", h.GetReview)
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
		reviews.DELETE("/admin/:id", h.AdminDeleteReview)
	}

	superReviews := authed.Group("/super-reviews")
	{
		superReviews.POST("", h.AddSuperReview)
		superReviews.GET("/movie/:movieId", h.MovieSuperReviews)
		superReviews.GET("/:id", h.GetSuperReview)
		superReviews.PUT("/:id", h.UpdateSuperReview)
		superReviews.DELETE("/:id", h.DeleteSuperReview)
		superReviews.DELETE("/admin/:id", h.AdminDeleteSuperReview)
	}
}
