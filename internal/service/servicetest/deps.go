package servicetest

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/cinecritic/internal/model"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/session"
)

// Clock 可手动推进的时钟
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock 创建指定起始时间的时钟
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now 当前时间
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance 推进时钟
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Env 测试环境：内存仓库、会话存储、时钟
type Env struct {
	Store    *Store
	Sessions *session.MemoryStore
	Clock    *Clock
	Deps     service.Deps
}

// NewEnv 创建测试环境，bcrypt 使用最低 cost 加快测试
func NewEnv() *Env {
	store := NewStore()
	clock := NewClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	sessions := session.NewMemoryStore(session.WithClock(clock.Now))

	return &Env{
		Store:    store,
		Sessions: sessions,
		Clock:    clock,
		Deps: service.Deps{
			Users:        store.Users(),
			Movies:       store.Movies(),
			Reviews:      store.Reviews(),
			SuperReviews: store.SuperReviews(),
			Sessions:     sessions,
			Hasher:       service.NewBcryptHasher(bcrypt.MinCost),
			Now:          clock.Now,
		},
	}
}

// Services 基于该环境创建服务集合
func (e *Env) Services() *service.Services {
	return service.New(e.Deps)
}

// SeedUser 直接写入一个指定角色的用户
func (e *Env) SeedUser(username, email, password string, role model.Role) model.User {
	hash, err := e.Deps.Hasher.Hash(password)
	if err != nil {
		panic(err)
	}
	u := model.NewUser(username, email, hash, e.Clock.Now()).ChangeRole(role)
	if err := e.Store.Users().Save(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// SeedMovie 直接写入一部电影
func (e *Env) SeedMovie(title string) model.Movie {
	m := model.NewMovie(title, 2001, 120, "", "", e.Clock.Now())
	if err := e.Store.Movies().Save(context.Background(), m); err != nil {
		panic(err)
	}
	return m
}
