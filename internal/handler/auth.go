package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/filmfest/internal/middleware"
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/utils"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register 注册（对外注册的都是制片人，评委账号由管理员创建）
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
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

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password, model.RoleProducer)
	if err != nil {
		utils.InternalServerError(c, "注册失败")
		return
	}

	utils.Success(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录，签发 JWT 并写入 Cookie
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, string(user.Role), h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "签发 Token 失败")
		return
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout 登出，清掉 Cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Repos.User.FindByID(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}
