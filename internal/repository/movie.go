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

type movieRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title             string    `gorm:"size:255;not null"`
	ReleaseYear       int       `gorm:"not null"`
	DurationMinutes   int       `gorm:"not null"`
	Description       string    `gorm:"type:text"`
	TrailerURL        string    `gorm:"size:1024"`
	PosterData        []byte    `gorm:"type:bytea"`
	PosterContentType string    `gorm:"size:100"`
	CreatedAt         time.Time `gorm:"not null;index"`
}

func (movieRecord) TableName() string { return "movies" }

func movieToRecord(m model.Movie) movieRecord {
	rec := movieRecord{
		ID:              m.ID,
		Title:           m.Title,
		ReleaseYear:     m.ReleaseYear,
		DurationMinutes: m.DurationMinutes,
		Description:     m.Description,
		TrailerURL:      m.TrailerURL,
		CreatedAt:       m.CreatedAt,
	}
	if m.HasPoster() {
		rec.PosterData = m.Poster.Data
		rec.PosterContentType = m.Poster.ContentType
	}
	return rec
}

func (r movieRecord) toModel() model.Movie {
	m := model.Movie{
		ID:              r.ID,
		Title:           r.Title,
		ReleaseYear:     r.ReleaseYear,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
		TrailerURL:      r.TrailerURL,
		CreatedAt:       r.CreatedAt,
	}
	if len(r.PosterData) > 0 {
		m.Poster = &model.Poster{Data: r.PosterData, ContentType: r.PosterContentType}
	}
	return m
}

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Save 创建或整体更新电影（含海报）
func (r *MovieRepository) Save(ctx context.Context, movie model.Movie) error {
	rec := movieToRecord(movie)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rec).Error
	return wrap(err, "MOVIE_SAVE_FAILED", "", "movie_id", movie.ID)
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	var rec movieRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "MOVIE_FIND_FAILED", "", "movie_id", id)
	}

	movie := rec.toModel()
	return &movie, nil
}

// List 按创建时间倒序分页
func (r *MovieRepository) List(ctx context.Context, limit, offset int) ([]model.Movie, error) {
	var recs []movieRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, wrap(err, "MOVIE_LIST_FAILED", "", "limit", limit, "offset", offset)
	}

	movies := make([]model.Movie, 0, len(recs))
	for _, rec := range recs {
		movies = append(movies, rec.toModel())
	}
	return movies, nil
}
