package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

// SuperReviewService 专业影评
type SuperReviewService struct {
	superReviews SuperReviewRepository
	movies       MovieRepository
	users        UserRepository
	now          func() time.Time
	log          *zap.SugaredLogger
}

// NewSuperReviewService 创建专业影评服务
func NewSuperReviewService(d Deps) *SuperReviewService {
	d = d.withDefaults()
	return &SuperReviewService{
		superReviews: d.SuperReviews,
		movies:       d.Movies,
		users:        d.Users,
		now:          d.Now,
		log:          d.Logger,
	}
}

// Add 发布专业影评，先检查角色再校验字段
func (s *SuperReviewService) Add(ctx context.Context, callerID uuid.UUID, req *SuperReviewRequest) (model.SuperReview, error) {
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return model.SuperReview{}, err
	}
	if !caller.CanWriteSuperReviews() {
		return model.SuperReview{}, apperr.Forbidden("Only SUPER_REVIEWER and ADMIN users can create super reviews")
	}

	if err := validateAddSuperReview(req); err != nil {
		return model.SuperReview{}, err
	}
	if err := ensureMovieExists(ctx, s.movies, *req.MovieID); err != nil {
		return model.SuperReview{}, err
	}

	review := model.NewSuperReview(*req.MovieID, caller.ID, req.content(), s.now())
	if err := s.superReviews.Save(ctx, review); err != nil {
		return model.SuperReview{}, wrapInternal(err)
	}
	return review, nil
}

// FindByID 查询专业影评
func (s *SuperReviewService) FindByID(ctx context.Context, id uuid.UUID) (model.SuperReview, error) {
	review, err := s.superReviews.FindByID(ctx, id)
	if err != nil {
		return model.SuperReview{}, wrapInternal(err)
	}
	if review == nil {
		return model.SuperReview{}, apperr.NotFound("Super review not found")
	}
	return *review, nil
}

// FindByMovieID 电影下的全部专业影评
func (s *SuperReviewService) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.SuperReview, error) {
	reviews, err := s.superReviews.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, wrapInternal(err)
	}
	return reviews, nil
}

// Update 作者整体替换专业影评内容
func (s *SuperReviewService) Update(ctx context.Context, callerID, reviewID uuid.UUID, req *SuperReviewRequest) (model.SuperReview, error) {
	if req == nil {
		req = &SuperReviewRequest{}
	}
	if err := validateSuperReviewContent(req); err != nil {
		return model.SuperReview{}, err
	}

	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return model.SuperReview{}, err
	}
	if !review.AuthoredBy(callerID) {
		return model.SuperReview{}, apperr.Forbidden("You can only edit your own super reviews")
	}

	updated := review.Update(req.content(), s.now())
	if err := s.superReviews.Save(ctx, updated); err != nil {
		return model.SuperReview{}, wrapInternal(err)
	}
	return updated, nil
}

// Delete 作者或管理员删除专业影评
func (s *SuperReviewService) Delete(ctx context.Context, callerID, reviewID uuid.UUID) error {
	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return err
	}
	if !review.AuthoredBy(caller.ID) && !caller.IsAdmin() {
		return apperr.Forbidden("You can only delete your own super reviews")
	}
	return s.delete(ctx, caller.ID, review)
}

// AdminDelete 仅管理员可用的删除入口
func (s *SuperReviewService) AdminDelete(ctx context.Context, callerID, reviewID uuid.UUID) error {
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperr.Forbidden("Only admins can delete other users' super reviews")
	}

	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	return s.delete(ctx, caller.ID, review)
}

func (s *SuperReviewService) delete(ctx context.Context, callerID uuid.UUID, review model.SuperReview) error {
	if err := s.superReviews.DeleteByID(ctx, review.ID); err != nil {
		return wrapInternal(err)
	}
	s.log.Infow("删除专业影评", "super_review_id", review.ID, "author_id", review.UserID, "by", callerID)
	return nil
}
