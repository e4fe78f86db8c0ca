package model

import (
	"time"

	"github.com/google/uuid"
)

// Review 普通影评
type Review struct {
	ID        uuid.UUID  `json:"id"`
	MovieID   uuid.UUID  `json:"movie_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NewReview 创建影评，UpdatedAt 在首次编辑前为空
func NewReview(movieID, userID uuid.UUID, rating int, comment string, now time.Time) Review {
	return Review{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}
}

// Update 返回更新评分和内容后的副本
func (r Review) Update(rating int, comment string, now time.Time) Review {
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = &now
	return r
}

// AuthoredBy 是否由该用户发布
func (r Review) AuthoredBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
