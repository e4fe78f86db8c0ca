package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/utils"
)

// ChangeRoleRequest 修改角色请求
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Services.User.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Created(c, user)
}

// Me 当前登录用户
func (h *Handler) Me(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	user, err := h.Services.User.FindByID(c.Request.Context(), callerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, user)
}

// GetUser 查询用户
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.Services.User.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, user)
}

// ListUsers 用户列表（管理员）
func (h *Handler) ListUsers(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	users, err := h.Services.User.List(c.Request.Context(), callerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, users)
}

// ChangeRole 修改用户角色（管理员）
func (h *Handler) ChangeRole(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Services.User.ChangeRole(c.Request.Context(), callerID, targetID, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, user)
}
