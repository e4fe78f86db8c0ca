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

type superReviewRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	MovieID         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OverallRating   *int
	ScriptRating    *int
	ActingRating    *int
	EffectsRating   *int
	MusicRating     *int
	Title           string     `gorm:"size:200"`
	DetailedComment string     `gorm:"type:text"`
	Pros            string     `gorm:"type:text"`
	Cons            string     `gorm:"type:text"`
	Recommendation  bool       `gorm:"not null;default:false"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false"`
}

func (superReviewRecord) TableName() string { return "super_reviews" }

func superReviewToRecord(s model.SuperReview) superReviewRecord {
	return superReviewRecord{
		ID:              s.ID,
		MovieID:         s.MovieID,
		UserID:          s.UserID,
		OverallRating:   s.Ratings.Overall,
		ScriptRating:    s.Ratings.Script,
		ActingRating:    s.Ratings.Acting,
		EffectsRating:   s.Ratings.Effects,
		MusicRating:     s.Ratings.Music,
		Title:           s.Title,
		DetailedComment: s.DetailedComment,
		Pros:            s.Pros,
		Cons:            s.Cons,
		Recommendation:  s.Recommendation,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r superReviewRecord) toModel() model.SuperReview {
	return model.SuperReview{
		ID:      r.ID,
		MovieID: r.MovieID,
		UserID:  r.UserID,
		Ratings: model.Ratings{
			Overall: r.OverallRating,
			Script:  r.ScriptRating,
			Acting:  r.ActingRating,
			Effects: r.EffectsRating,
			Music:   r.MusicRating,
		},
		Title:           r.Title,
		DetailedComment: r.DetailedComment,
		Pros:            r.Pros,
		Cons:            r.Cons,
		Recommendation:  r.Recommendation,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type SuperReviewRepository struct {
	db *gorm.DB
}

func NewSuperReviewRepository(db *gorm.DB) *SuperReviewRepository {
	return &SuperReviewRepository{db: db}
}

// Save 创建或整体更新专业影评
func (r *SuperReviewRepository) Save(ctx context.Context, review model.SuperReview) error {
	rec := superReviewToRecord(review)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rec).Error
	return wrap(err, "SUPER_REVIEW_SAVE_FAILED", "", "super_review_id", review.ID)
}

// FindByID 根据 ID 查找专业影评
func (r *SuperReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SuperReview, error) {
	var rec superReviewRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "SUPER_REVIEW_FIND_FAILED", "", "super_review_id", id)
	}

	review := rec.toModel()
	return &review, nil
}

// FindByMovieID 电影下的专业影评，最新的在前
func (r *SuperReviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]model.SuperReview, error) {
	var recs []superReviewRecord
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, wrap(err, "SUPER_REVIEW_LIST_FAILED", "", "movie_id", movieID)
	}

	reviews := make([]model.SuperReview, 0, len(recs))
	for _, rec := range recs {
		reviews = append(reviews, rec.toModel())
	}
	return reviews, nil
}

// DeleteByID 删除专业影评
func (r *SuperReviewRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&superReviewRecord{}, "id = ?", id).Error
	return wrap(err, "SUPER_REVIEW_DELETE_FAILED", "", "super_review_id", id)
}
