package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

// ReviewService 普通影评
type ReviewService struct {
	reviews ReviewRepository
	movies  MovieRepository
	users   UserRepository
	now     func() time.Time
	log     *zap.SugaredLogger
}

// NewReviewService 创建影评服务
func NewReviewService(d Deps) *ReviewService {
	d = d.withDefaults()
	return &ReviewService{
		reviews: d.Reviews,
		movies:  d.Movies,
		users:   d.Users,
		now:     d.Now,
		log:     d.Logger,
	}
}

// Add 为调用者发布影评，每人每部电影一条
func (s *ReviewService) Add(ctx context.Context, callerID uuid.UUID, req *AddReviewRequest) (model.Review, error) {
	if err := validateAddReview(req); err != nil {
		return model.Review{}, err
	}

	movieID := *req.MovieID
	if err := ensureMovieExists(ctx, s.movies, movieID); err != nil {
		return model.Review{}, err
	}

	existing, err := s.reviews.FindByMovieAndUser(ctx, movieID, callerID)
	if err != nil {
		return model.Review{}, wrapInternal(err)
	}
	if existing != nil {
		return model.Review{}, apperr.Conflict("You have already reviewed this movie")
	}

	review := model.NewReview(movieID, callerID, *req.Rating, deref(req.Comment), s.now())
	if err := s.reviews.Save(ctx, review); err != nil {
		return model.Review{}, wrapInternal(err)
	}
	return review, nil
}

// FindByID 查询影评
func (s *ReviewService) FindByID(ctx context.Context, id uuid.UUID) (model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return model.Review{}, wrapInternal(err)
	}
	if review == nil {
		return model.Review{}, apperr.NotFound("Review not found")
	}
	return *review, nil
}

// FindByMovieID 电影下的全部影评
func (s *ReviewService) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviews.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, wrapInternal(err)
	}
	return reviews, nil
}

// Update 作者修改自己的影评
func (s *ReviewService) Update(ctx context.Context, callerID, reviewID uuid.UUID, req *UpdateReviewRequest) (model.Review, error) {
	if err := validateUpdateReview(req); err != nil {
		return model.Review{}, err
	}

	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return model.Review{}, err
	}
	if !review.AuthoredBy(callerID) {
		return model.Review{}, apperr.Forbidden("You can only edit your own reviews")
	}

	rating, comment := review.Rating, review.Comment
	if req != nil && req.Rating != nil {
		rating = *req.Rating
	}
	if req != nil && req.Comment != nil {
		comment = *req.Comment
	}

	updated := review.Update(rating, comment, s.now())
	if err := s.reviews.Save(ctx, updated); err != nil {
		return model.Review{}, wrapInternal(err)
	}
	return updated, nil
}

// Delete 作者删除自己的影评
func (s *ReviewService) Delete(ctx context.Context, callerID, reviewID uuid.UUID) error {
	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !review.AuthoredBy(callerID) {
		return apperr.Forbidden("You can only delete your own reviews")
	}
	return s.delete(ctx, callerID, review)
}

// AdminDelete 管理员删除任意影评
func (s *ReviewService) AdminDelete(ctx context.Context, callerID, reviewID uuid.UUID) error {
	caller, err := loadCaller(ctx, s.users, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperr.Forbidden("Only admins can delete other users' reviews")
	}

	review, err := s.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	return s.delete(ctx, callerID, review)
}

func (s *ReviewService) delete(ctx context.Context, callerID uuid.UUID, review model.Review) error {
	if err := s.reviews.DeleteByID(ctx, review.ID); err != nil {
		return wrapInternal(err)
	}
	s.log.Infow("删除影评", "review_id", review.ID, "author_id", review.UserID, "by", callerID)
	return nil
}

// ensureMovieExists 引用的电影必须存在
func ensureMovieExists(ctx context.Context, movies MovieRepository, movieID uuid.UUID) error {
	movie, err := movies.FindByID(ctx, movieID)
	if err != nil {
		return wrapInternal(err)
	}
	if movie == nil {
		return apperr.NotFound("Movie not found")
	}
	return nil
}
