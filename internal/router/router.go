package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/handler"
	"github.com/user/filmfest/internal/middleware"
	"github.com/user/filmfest/internal/model"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开接口 ====================
	r.GET("/api/catalog", h.Catalog)
	r.GET("/api/catalog/:id", h.MovieDetail)

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
	r.GET("/api/me", middleware.RequireAuth(h.Config.AppSecret), h.Me)

	// ==================== 制片人 ====================
	producer := r.Group("/api/producer")
	producer.Use(middleware.RequireAuth(h.Config.AppSecret))
	producer.Use(middleware.RequireRole(model.RoleProducer))
	{
		producer.POST("/movies", h.SubmitMovie)
		producer.PUT("/movies/:id", h.UpdateMovie)
		producer.GET("/movies", h.MyMovies)
	}

	// ==================== 评委 ====================
	jury := r.Group("/api/jury")
	jury.Use(middleware.RequireAuth(h.Config.AppSecret))
	jury.Use(middleware.RequireRole(model.RoleJury))
	{
		jury.GET("/movies", h.JuryMovies)
		jury.POST("/movies/:id/vote", h.JuryVote)
		jury.GET("/movies/:id/vote", h.JuryMovieVote)
	}

	// ==================== 管理后台 ====================
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/movies", h.AdminMovies)
		admin.PUT("/movies/:id/status", h.AdminTransition)
		admin.POST("/movies/status", h.AdminBulkTransition)
		admin.PUT("/movies/:id/comments", h.AdminComments)
		admin.DELETE("/movies/:id", h.AdminDeleteMovie)

		// 评委指派
		admin.GET("/movies/:id/juries", h.AdminMovieJuries)
		admin.POST("/movies/:id/juries", h.AdminAssign)
		admin.DELETE("/movies/:id/juries/:juryId", h.AdminUnassign)

		// 账号管理
		admin.POST("/juries", h.AdminCreateJury)
		admin.GET("/users", h.AdminUsers)

		// 仪表盘统计
		admin.GET("/movies/:id/score", h.AdminMovieScore)
		admin.GET("/stats/leaderboard", h.Leaderboard)
		admin.GET("/stats/distribution", h.VoteDistribution)
		admin.GET("/stats/trend", h.VoteTrend)
		admin.GET("/stats/counters", h.PlatformCounters)
	}
}
