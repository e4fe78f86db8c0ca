package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/middleware"
	"github.com/user/cinecritic/internal/utils"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 邮箱密码登录，返回会话 ID
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, res.Message, res)
}

// Logout 注销当前会话，会话不存在也返回成功
func (h *Handler) Logout(c *gin.Context) {
	h.Services.Auth.Logout(middleware.SessionID(c))
	utils.SuccessWithMessage(c, "Logout successful", nil)
}
