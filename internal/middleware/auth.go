package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/user/cinecritic/internal/utils"
)

// SessionHeader 携带会话 ID 的请求头
const SessionHeader = "Session-Id"

const userIDKey = "user_id"

// SessionResolver 会话 ID 解析为用户 ID
type SessionResolver interface {
	Resolve(sessionID string) (uuid.UUID, bool)
}

// RequireAuth 必须登录中间件
func RequireAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.Resolve(c.GetHeader(SessionHeader))
		if !ok {
			utils.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// SessionID 请求携带的会话 ID
func SessionID(c *gin.Context) string {
	return c.GetHeader(SessionHeader)
}
