package model

import (
	"time"

	"github.com/google/uuid"
)

// Poster 海报图片
type Poster struct {
	Data        []byte
	ContentType string
}

// Movie 电影，创建后仅海报可替换
type Movie struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	ReleaseYear     int       `json:"release_year"`
	DurationMinutes int       `json:"duration_minutes"`
	Description     string    `json:"description,omitempty"`
	TrailerURL      string    `json:"trailer_url,omitempty"`
	Poster          *Poster   `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewMovie 创建新电影
func NewMovie(title string, releaseYear, durationMinutes int, description, trailerURL string, now time.Time) Movie {
	return Movie{
		ID:              uuid.New(),
		Title:           title,
		ReleaseYear:     releaseYear,
		DurationMinutes: durationMinutes,
		Description:     description,
		TrailerURL:      trailerURL,
		CreatedAt:       now,
	}
}

// WithPoster 返回替换海报后的副本，ID 和创建时间不变
func (m Movie) WithPoster(p Poster) Movie {
	data := make([]byte, len(p.Data))
	copy(data, p.Data)
	m.Poster = &Poster{Data: data, ContentType: p.ContentType}
	return m
}

// HasPoster 是否已上传海报
func (m Movie) HasPoster() bool {
	return m.Poster != nil && len(m.Poster.Data) > 0
}
