// Package session 维护会话 ID 到用户的映射，同一用户同时只保留一个有效会话
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samber/oops"
)

const (
	// TokenBytes 会话 ID 的随机字节数（hex 后 64 字符）
	TokenBytes = 32
	// DefaultTTL 会话有效期
	DefaultTTL = 24 * time.Hour
)

// Session 会话
type Session struct {
	ID        string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ExpiredAt 在给定时间点是否已过期
func (s Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// Store 会话存储
type Store interface {
	// Create 为用户创建新会话，先清除该用户已有的会话
	Create(userID uuid.UUID) (Session, error)
	// Resolve 返回会话所属用户；不存在或已过期返回 false，过期会话会被顺带删除
	Resolve(sessionID string) (uuid.UUID, bool)
	// Remove 删除会话，不存在时什么也不做
	Remove(sessionID string)
	// RemoveAllForUser 删除用户的全部会话
	RemoveAllForUser(userID uuid.UUID)
}

// MemoryStore 进程内会话存储
//
// 所有操作都在 mu 下完成，读-改-写（过期淘汰、同用户顶替）不会交错。
// 过期只在读取时检查，没有后台清理。
type MemoryStore struct {
	mu     sync.Mutex
	items  *cache.Cache
	byUser map[uuid.UUID]string
	ttl    time.Duration
	now    func() time.Time
}

// Option MemoryStore 选项
type Option func(*MemoryStore)

// WithTTL 设置会话有效期
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock 设置时钟，测试时使用
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore 创建进程内会话存储
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		// 过期由 Session.ExpiresAt 控制，不启用 go-cache 自带的过期和清理协程
		items:  cache.New(cache.NoExpiration, 0),
		byUser: make(map[uuid.UUID]string),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 生成新的会话 ID，并使该用户之前的会话失效
func (s *MemoryStore) Create(userID uuid.UUID) (Session, error) {
	id, err := generateID()
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeUserLocked(userID)

	now := s.now()
	sess := Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.items.Set(id, sess, cache.NoExpiration)
	s.byUser[userID] = id

	return sess, nil
}

// Resolve 查找会话所属用户
func (s *MemoryStore) Resolve(sessionID string) (uuid.UUID, bool) {
	if sessionID == "" {
		return uuid.Nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return uuid.Nil, false
	}
	if sess.ExpiredAt(s.now()) {
		s.removeLocked(sess)
		return uuid.Nil, false
	}
	return sess.UserID, true
}

// Remove 删除会话
func (s *MemoryStore) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.getLocked(sessionID); ok {
		s.removeLocked(sess)
	}
}

// RemoveAllForUser 删除用户的全部会话
func (s *MemoryStore) RemoveAllForUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeUserLocked(userID)
}

// Len 当前存储的会话数（包括尚未被读取淘汰的过期会话）
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.ItemCount()
}

func (s *MemoryStore) getLocked(sessionID string) (Session, bool) {
	v, ok := s.items.Get(sessionID)
	if !ok {
		return Session{}, false
	}
	sess, ok := v.(Session)
	return sess, ok
}

func (s *MemoryStore) removeLocked(sess Session) {
	s.items.Delete(sess.ID)
	if s.byUser[sess.UserID] == sess.ID {
		delete(s.byUser, sess.UserID)
	}
}

func (s *MemoryStore) removeUserLocked(userID uuid.UUID) {
	if id, ok := s.byUser[userID]; ok {
		s.items.Delete(id)
		delete(s.byUser, userID)
	}
}

func generateID() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", oops.In("session").
			Code("SESSION_ID_GENERATE_FAILED").
			With("requested_bytes", TokenBytes).
			Wrap(err)
	}
	return hex.EncodeToString(b), nil
}
