package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
	"github.com/user/cinecritic/internal/session"
)

// UserRepository 用户持久化
type UserRepository interface {
	Save(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// MovieRepository 电影持久化
type MovieRepository interface {
	Save(ctx context.Context, movie model.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	List(ctx context.Context, limit, offset int) ([]model.Movie, error)
}

// ReviewRepository 影评持久化
type ReviewRepository interface {
	Save(ctx context.Context, review model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.Review, error)
	FindByMovieAndUser(ctx context.Context, movieID, userID uuid.UUID) (*model.Review, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// SuperReviewRepository 专业影评持久化
type SuperReviewRepository interface {
	Save(ctx context.Context, review model.SuperReview) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SuperReview, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.SuperReview, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Deps 服务依赖
type Deps struct {
	Users        UserRepository
	Movies       MovieRepository
	Reviews      ReviewRepository
	SuperReviews SuperReviewRepository
	Sessions     session.Store
	Hasher       PasswordHasher
	Logger       *zap.SugaredLogger
	// Now 时钟，为空时使用 time.Now
	Now func() time.Time
	// PosterMaxBytes 海报大小上限，<=0 时使用 DefaultPosterMaxBytes
	PosterMaxBytes int64
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Hasher == nil {
		d.Hasher = NewBcryptHasher(0)
	}
	if d.PosterMaxBytes <= 0 {
		d.PosterMaxBytes = DefaultPosterMaxBytes
	}
	return d
}

// Services 服务集合
type Services struct {
	Auth        *AuthService
	User        *UserService
	Movie       *MovieService
	Review      *ReviewService
	SuperReview *SuperReviewService
}

// New 创建服务集合
func New(d Deps) *Services {
	return &Services{
		Auth:        NewAuthService(d),
		User:        NewUserService(d),
		Movie:       NewMovieService(d),
		Review:      NewReviewService(d),
		SuperReview: NewSuperReviewService(d),
	}
}

// loadCaller 加载调用者，会话有效但用户不存在视为未认证
func loadCaller(ctx context.Context, users UserRepository, id uuid.UUID) (model.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, wrapInternal(err)
	}
	if user == nil {
		return model.User{}, apperr.Unauthorized("User not found")
	}
	return *user, nil
}

// wrapInternal 协作方错误统一为 Internal，已分类的错误原样返回
func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return apperr.Internal(err)
}
