package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/user/filmfest/internal/middleware"
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/utils"
)

type movieRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Year        string   `json:"year" binding:"max=8"`
	Duration    string   `json:"duration" binding:"max=32"`
	Poster      string   `json:"poster"`
	VideoURL    string   `json:"video_url"`
	Genres      []string `json:"genres"`
}

// SubmitMovie 制片人提交影片，初始状态 submitted
func (h *Handler) SubmitMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	movie := &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Duration:    req.Duration,
		Poster:      req.Poster,
		VideoURL:    req.VideoURL,
		Genres:      pq.StringArray(req.Genres),
		ProducerID:  middleware.GetUserID(c),
	}
	if err := h.Repos.Movie.Create(movie); err != nil {
		utils.InternalServerError(c, "提交失败")
		return
	}

	utils.Success(c, movie)
}

// UpdateMovie 制片人修改自己影片的内容字段
// 只有 submitted 和 assigned 状态允许改，进入评审后内容锁定
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}
	if movie.ProducerID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能修改自己的影片")
		return
	}
	if movie.SelectionStatus != model.StatusSubmitted && movie.SelectionStatus != model.StatusAssigned {
		utils.BadRequest(c, "影片已进入评审流程，内容已锁定")
		return
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Year = req.Year
	movie.Duration = req.Duration
	movie.Poster = req.Poster
	movie.VideoURL = req.VideoURL
	movie.Genres = pq.StringArray(req.Genres)

	if err := h.Repos.Movie.UpdateContent(movie); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	utils.Success(c, movie)
}

// MyMovies 制片人名下的影片列表（带当前状态和评语）
func (h *Handler) MyMovies(c *gin.Context) {
	movies, err := h.Repos.Movie.ListByProducer(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// 公开片单只展示这几个状态
var catalogStatuses = []model.SelectionStatus{
	model.StatusSelected,
	model.StatusFinalist,
	model.StatusAwarded,
}

// Catalog 公开片单（入选/决选/获奖影片），结果走 LRU 缓存
func (h *Handler) Catalog(c *gin.Context) {
	const cacheKey = "catalog"
	if movies, ok := h.catalogCache.Get(cacheKey); ok {
		utils.Success(c, movies)
		return
	}

	movies, err := h.Repos.Movie.ListByStatuses(catalogStatuses)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	h.catalogCache.Set(cacheKey, movies)
	utils.Success(c, movies)
}

// MovieDetail 公开影片详情（仅限片单内的影片）
func (h *Handler) MovieDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	key := "movie:" + c.Param("id")
	if cached, ok := utils.CacheGet(key); ok {
		utils.Success(c, cached)
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	public := false
	for _, status := range catalogStatuses {
		if movie.SelectionStatus == status {
			public = true
			break
		}
	}
	if !public {
		utils.NotFound(c, "")
		return
	}

	utils.CacheSet(key, movie, 0)
	utils.Success(c, movie)
}
