package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 密码单向哈希
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify 密码与哈希是否匹配，哈希格式错误也视为不匹配
	Verify(password, hash string) bool
}

// BcryptHasher 基于 bcrypt 的实现
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 创建 bcrypt 哈希器，cost 为 0 时使用 bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash 生成哈希
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 校验密码
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
