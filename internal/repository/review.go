package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/user/cinecritic/internal/model"
)

type reviewRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MovieID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_movie_user"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_movie_user"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"size:1000"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (reviewRecord) TableName() string { return "reviews" }

func reviewToRecord(r model.Review) reviewRecord {
	return reviewRecord{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r reviewRecord) toModel() model.Review {
	return model.Review{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Save 创建或更新影评，同一用户对同一电影重复创建返回 Conflict
func (r *ReviewRepository) Save(ctx context.Context, review model.Review) error {
	rec := reviewToRecord(review)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rec).Error
	return wrap(err, "REVIEW_SAVE_FAILED", "You have already reviewed this movie", "review_id", review.ID)
}

// FindByID 根据 ID 查找影评
func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var rec reviewRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "REVIEW_FIND_FAILED", "", "review_id", id)
	}

	review := rec.toModel()
	return &review, nil
}

// FindByMovieID 电影下的影评，最新的在前
func (r *ReviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.Review, error) {
	var recs []reviewRecord
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, wrap(err, "REVIEW_LIST_FAILED", "", "movie_id", movieID)
	}

	reviews := make([]model.Review, 0, len(recs))
	for _, rec := range recs {
		reviews = append(reviews, rec.toModel())
	}
	return reviews, nil
}

// FindByMovieAndUser 查找用户对某部电影的影评
func (r *ReviewRepository) FindByMovieAndUser(ctx context.Context, movieID, userID uuid.UUID) (*model.Review, error) {
	var rec reviewRecord
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "REVIEW_FIND_FAILED", "", "movie_id", movieID, "user_id", userID)
	}

	review := rec.toModel()
	return &review, nil
}

// DeleteByID 删除影评
func (r *ReviewRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&reviewRecord{}, "id = ?", id).Error
	return wrap(err, "REVIEW_DELETE_FAILED", "", "review_id", id)
}
