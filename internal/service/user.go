package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=9,max=72"`
}

// UserService 注册、查询与角色管理
type UserService struct {
	users    UserRepository
	hasher   PasswordHasher
	validate *validator.Validate
	now      func() time.Time
	log      *zap.SugaredLogger
}

// NewUserService 创建用户服务
func NewUserService(d Deps) *UserService {
	d = d.withDefaults()
	return &UserService{
		users:    d.Users,
		hasher:   d.Hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      d.Now,
		log:      d.Logger,
	}
}

// Register 注册新用户，角色为 USER
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := s.validateRegister(req); err != nil {
		return model.User{}, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return model.User{}, wrapInternal(err)
	}
	if existing != nil {
		return model.User{}, apperr.Conflict("Email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, apperr.Internal(err)
	}

	user := model.NewUser(req.Username, req.Email, hash, s.now())
	if err := s.users.Save(ctx, user); err != nil {
		return model.User{}, wrapInternal(err)
	}

	s.log.Infow("用户注册", "user_id", user.ID)
	return user, nil
}

// FindByID 查询用户
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, wrapInternal(err)
	}
	if user == nil {
		return model.User{}, apperr.NotFound("User not found")
	}
	return *user, nil
}

// List 列出全部用户，仅管理员可用
func (s *UserService) List(ctx context.Context, callerID uuid.UUID) ([]model.User, error) {
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can list users")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, wrapInternal(err)
	}
	return users, nil
}

// ChangeRole 修改目标用户角色
//
// 仅看调用者当前是否为 ADMIN，不限制目标用户的原角色。
func (s *UserService) ChangeRole(ctx context.Context, callerID, targetID uuid.UUID, newRole string) (model.User, error) {
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return model.User{}, err
	}
	if !caller.IsAdmin() {
		return model.User{}, apperr.Forbidden("Only admins can change user roles")
	}

	role, ok := model.ParseRole(newRole)
	if !ok {
		return model.User{}, apperr.Validation("Invalid role: " + newRole)
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return model.User{}, wrapInternal(err)
	}
	if target == nil {
		return model.User{}, apperr.NotFound("Target user not found")
	}

	updated := target.ChangeRole(role)
	if err := s.users.Save(ctx, updated); err != nil {
		return model.User{}, wrapInternal(err)
	}

	s.log.Infow("用户角色变更",
		"admin_id", caller.ID,
		"user_id", updated.ID,
		"from", target.Role,
		"to", updated.Role,
	)
	return updated, nil
}

// EnsureAdmin 确保存在指定邮箱的管理员账号，已存在则提升为 ADMIN
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, wrapInternal(err)
	}
	if existing != nil {
		if existing.IsAdmin() {
			return *existing, nil
		}
		promoted := existing.ChangeRole(model.RoleAdmin)
		if err := s.users.Save(ctx, promoted); err != nil {
			return model.User{}, wrapInternal(err)
		}
		s.log.Infow("已有用户提升为管理员", "user_id", promoted.ID)
		return promoted, nil
	}

	user, err := s.Register(ctx, RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return model.User{}, err
	}
	admin := user.ChangeRole(model.RoleAdmin)
	if err := s.users.Save(ctx, admin); err != nil {
		return model.User{}, wrapInternal(err)
	}
	s.log.Infow("已创建管理员", "user_id", admin.ID)
	return admin, nil
}

func (s *UserService) validateRegister(req RegisterRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		// bcrypt 按字节限制长度
		if len(req.Password) > maxBcryptPasswordLength {
			return apperr.Validation("Password too long")
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("Invalid request")
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Username":
		return apperr.Validation("Username must be between 3 and 50 characters")
	case "Email":
		return apperr.Validation("Invalid email")
	case "Password":
		if fe.Tag() == "max" {
			return apperr.Validation("Password too long")
		}
		return apperr.Validation("Password must be longer than 8 characters")
	default:
		return apperr.Validation("Invalid request")
	}
}
