package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/config"
	"github.com/user/filmfest/internal/middleware"
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
	"github.com/user/filmfest/internal/service"
	"github.com/user/filmfest/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos       *repository.Repositories
	Config      *config.Config
	Selection   *service.SelectionService
	Assignment  *service.AssignmentService
	Voting      *service.VotingService
	Aggregation *service.AggregationService

	catalogCache *utils.TTLCache[[]*model.Movie] // 公开片单缓存
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:        repos,
		Config:       cfg,
		Selection:    service.NewSelectionService(repos),
		Assignment:   service.NewAssignmentService(repos),
		Voting:       service.NewVotingService(repos),
		Aggregation:  service.NewAggregationService(repos),
		catalogCache: utils.NewTTLCache[[]*model.Movie](256, time.Minute),
	}
}

// actor 从请求上下文取出已认证的操作者
func (h *Handler) actor(c *gin.Context) service.Actor {
	return service.Actor{
		ID:   middleware.GetUserID(c),
		Role: model.Role(middleware.GetRole(c)),
	}
}

// renderError 把业务错误映射成 HTTP 响应
// 存储层错误不透传细节，记日志后统一返回 500
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotAssigned):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrDuplicateAssignment):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrConcurrencyConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidEvaluation),
		errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrMovieLocked):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("[Handler] 未预期的错误: %v", err)
		utils.InternalServerError(c, "")
	}
}
