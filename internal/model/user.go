package model

import (
	"time"

	"github.com/google/uuid"
)

// User 用户，除角色外不可变
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser 注册新用户，默认角色为 USER
func NewUser(username, email, passwordHash string, now time.Time) User {
	return User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
	}
}

// ChangeRole 返回角色变更后的副本
func (u User) ChangeRole(role Role) User {
	u.Role = role
	return u
}

// IsAdmin 是否管理员
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSuperReviewer 是否专业影评人
func (u User) IsSuperReviewer() bool {
	return u.Role == RoleSuperReviewer
}

// CanWriteSuperReviews 专业影评人和管理员可以发布专业影评
func (u User) CanWriteSuperReviews() bool {
	return u.IsSuperReviewer() || u.IsAdmin()
}
