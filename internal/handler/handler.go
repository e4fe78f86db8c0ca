package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/oops"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/config"
	"github.com/user/cinecritic/internal/middleware"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Services *service.Services
	Config   *config.Config
	Log      *zap.SugaredLogger
}

// NewHandler 创建处理器
func NewHandler(services *service.Services, cfg *config.Config, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		Services: services,
		Config:   cfg,
		Log:      log,
	}
}

// respondError 按错误类别返回状态码，内部错误只记录日志不回显
func (h *Handler) respondError(c *gin.Context, err error) {
	msg := apperr.MessageOf(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		utils.BadRequest(c, msg)
	case apperr.KindUnauthorized:
		utils.Unauthorized(c, msg)
	case apperr.KindForbidden:
		utils.Forbidden(c, msg)
	case apperr.KindNotFound:
		utils.NotFound(c, msg)
	case apperr.KindConflict:
		utils.Conflict(c, msg)
	default:
		fields := []any{"method", c.Request.Method, "path", c.Request.URL.Path, "error", err}
		if oopsErr, ok := oops.AsOops(err); ok {
			fields = append(fields, "code", oopsErr.Code())
		}
		h.Log.Errorw("请求处理失败", fields...)
		utils.InternalServerError(c, "Internal server error")
	}
}

// callerID 当前登录用户，路由已挂 RequireAuth
func (h *Handler) callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired session")
	}
	return id, ok
}

// pathID 解析路径中的 UUID 参数
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON 解析请求体
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
