package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/middleware"
	"github.com/user/filmfest/internal/utils"
)

// ==================== 评委 ====================

// JuryMovies 评委被指派的影片列表
func (h *Handler) JuryMovies(c *gin.Context) {
	movies, err := h.Assignment.ListMoviesFor(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

type voteRequest struct {
	Evaluation string `json:"evaluation" binding:"required,evaluation"`
	Comments   string `json:"comments"`
}

// JuryVote 投票或改票
func (h *Handler) JuryVote(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	juryID := middleware.GetUserID(c)
	vote, err := h.Voting.CastOrUpdate(movieID, juryID, req.Evaluation, req.Comments, h.actor(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, vote)
}

// JuryMovieVote 评委查看自己对某影片的当前投票及改票历史
func (h *Handler) JuryMovieVote(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	vote, err := h.Voting.VoteFor(movieID, middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if vote == nil {
		utils.Success(c, gin.H{"vote": nil, "history": []any{}})
		return
	}

	history, err := h.Voting.History(vote.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"vote":    vote,
		"history": history,
	})
}
