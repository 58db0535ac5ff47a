package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/utils"
)

// ==================== 管理后台 ====================

// AdminMovies 影片列表，可按评选状态过滤
func (h *Handler) AdminMovies(c *gin.Context) {
	var status model.SelectionStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := model.ParseSelectionStatus(raw)
		if !ok {
			utils.BadRequest(c, "无效的评选状态")
			return
		}
		status = parsed
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	movies, err := h.Repos.Movie.ListByStatus(status, limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required,selection_status"`
}

// AdminTransition 变更单部影片的评选状态
func (h *Handler) AdminTransition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	movie, err := h.Selection.Transition(id, req.Status, h.actor(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, movie)
}

type bulkTransitionRequest struct {
	MovieIDs []int  `json:"movie_ids" binding:"required,min=1"`
	Status   string `json:"status" binding:"required,selection_status"`
}

// AdminBulkTransition 批量变更状态，逐条返回结果（不保证批次原子性）
func (h *Handler) AdminBulkTransition(c *gin.Context) {
	var req bulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	results := h.Selection.BulkTransition(req.MovieIDs, req.Status, h.actor(c))
	utils.Success(c, results)
}

type commentsRequest struct {
	JuryComment  *string `json:"jury_comment"`
	AdminComment *string `json:"admin_comment"`
}

// AdminComments 更新影片评语
func (h *Handler) AdminComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	var req commentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	movie, err := h.Selection.SetComments(id, req.JuryComment, req.AdminComment, h.actor(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, movie)
}

// AdminDeleteMovie 删除影片（级联清理投票、历史和指派）
func (h *Handler) AdminDeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	if err := h.Selection.DeleteMovie(id, h.actor(c)); err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "影片已删除", nil)
}

type assignRequest struct {
	JuryID int `json:"jury_id" binding:"required"`
}

// AdminAssign 指派评委
func (h *Handler) AdminAssign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	mj, err := h.Assignment.Assign(id, req.JuryID, h.actor(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, mj)
}

// AdminUnassign 取消指派（幂等）
func (h *Handler) AdminUnassign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}
	juryID, err := strconv.Atoi(c.Param("juryId"))
	if err != nil {
		utils.BadRequest(c, "无效的评委 ID")
		return
	}

	if err := h.Assignment.Unassign(id, juryID, h.actor(c)); err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "已取消指派", nil)
}

// AdminMovieJuries 影片的评委名单
func (h *Handler) AdminMovieJuries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	juries, err := h.Assignment.ListJuriesFor(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, juries)
}

// AdminMovieScore 影片的票数汇总
func (h *Handler) AdminMovieScore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	score, err := h.Aggregation.ScoreFor(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, score)
}

type createJuryRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// AdminCreateJury 创建评委账号
func (h *Handler) AdminCreateJury(c *gin.Context) {
	var req createJuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	existing, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.Conflict(c, "邮箱已被注册")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password, model.RoleJury)
	if err != nil {
		utils.InternalServerError(c, "创建失败")
		return
	}

	utils.Success(c, user)
}

// AdminUsers 按角色列出用户
func (h *Handler) AdminUsers(c *gin.Context) {
	role, ok := model.ParseRole(c.DefaultQuery("role", string(model.RoleJury)))
	if !ok {
		utils.BadRequest(c, "无效的角色")
		return
	}

	users, err := h.Repos.User.ListByRole(role)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, users)
}
