package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/session"
)

// LoginResult 登录结果
type LoginResult struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

// AuthService 登录、登出与会话解析
type AuthService struct {
	users    UserRepository
	sessions session.Store
	hasher   PasswordHasher
	log      *zap.SugaredLogger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService 创建认证服务
func NewAuthService(d Deps) *AuthService {
	d = d.withDefaults()
	return &AuthService{
		users:    d.Users,
		sessions: d.Sessions,
		hasher:   d.Hasher,
		log:      d.Logger,
	}
}

// Login 校验邮箱和密码并签发会话
//
// 邮箱不存在与密码错误返回同样的 Unauthorized。
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, wrapInternal(err)
	}

	if user == nil {
		// 用户不存在时也做一次哈希比较，避免通过响应时间枚举邮箱
		s.hasher.Verify(password, s.fallbackHash())
		s.log.Infow("登录失败", "reason", "unknown_email")
		return LoginResult{}, apperr.Unauthorized("Invalid email or password")
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Infow("登录失败", "reason", "bad_password", "user_id", user.ID)
		return LoginResult{}, apperr.Unauthorized("Invalid email or password")
	}

	sess, err := s.sessions.Create(user.ID)
	if err != nil {
		return LoginResult{}, apperr.Internal(err)
	}

	s.log.Infow("登录成功", "user_id", user.ID)
	return LoginResult{
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Message:   "Login successful",
	}, nil
}

// Logout 删除会话，会话不存在也视为成功
func (s *AuthService) Logout(sessionID string) {
	if userID, ok := s.sessions.Resolve(sessionID); ok {
		s.log.Infow("退出登录", "user_id", userID)
	}
	s.sessions.Remove(sessionID)
}

// Resolve 会话 ID 对应的用户
func (s *AuthService) Resolve(sessionID string) (uuid.UUID, bool) {
	return s.sessions.Resolve(sessionID)
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
