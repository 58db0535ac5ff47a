package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/utils"
)

// ==================== 仪表盘统计 ====================
// 这些接口每次现算，返回的 JSON 形状对仪表盘前端是稳定契约

// Leaderboard 排行榜
func (h *Handler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.Aggregation.Leaderboard(limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, entries)
}

// VoteDistribution 全站投票分布 {yes, no, toDiscuss}
func (h *Handler) VoteDistribution(c *gin.Context) {
	dist, err := h.Aggregation.VoteDistribution()
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, dist)
}

// VoteTrend 最近 N 天逐日投票数 [{date, count}]
func (h *Handler) VoteTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trend, err := h.Aggregation.VoteTrend(days)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, trend)
}

// PlatformCounters 平台计数（各状态影片数、投票总数）
func (h *Handler) PlatformCounters(c *gin.Context) {
	counters, err := h.Aggregation.PlatformCounters()
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, counters)
}
