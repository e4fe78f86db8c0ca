package model

import (
	"time"

	"github.com/google/uuid"
)

// Ratings 专业影评的五项评分，每项可为空
type Ratings struct {
	Overall *int `json:"overall_rating"`
	Script  *int `json:"script_rating"`
	Acting  *int `json:"acting_rating"`
	Effects *int `json:"effects_rating"`
	Music   *int `json:"music_rating"`
}

func (r Ratings) clone() Ratings {
	return Ratings{
		Overall: cloneInt(r.Overall),
		Script:  cloneInt(r.Script),
		Acting:  cloneInt(r.Acting),
		Effects: cloneInt(r.Effects),
		Music:   cloneInt(r.Music),
	}
}

// SuperReviewContent 专业影评可编辑的内容
type SuperReviewContent struct {
	Ratings         Ratings
	Title           string
	DetailedComment string
	Pros            string
	Cons            string
	Recommendation  bool
}

// SuperReview 专业影评
type SuperReview struct {
	ID              uuid.UUID  `json:"id"`
	MovieID         uuid.UUID  `json:"movie_id"`
	UserID          uuid.UUID  `json:"user_id"`
	Ratings         Ratings    `json:"ratings"`
	Title           string     `json:"title,omitempty"`
	DetailedComment string     `json:"detailed_comment,omitempty"`
	Pros            string     `json:"pros,omitempty"`
	Cons            string     `json:"cons,omitempty"`
	Recommendation  bool       `json:"recommendation"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// NewSuperReview 创建专业影评
func NewSuperReview(movieID, userID uuid.UUID, content SuperReviewContent, now time.Time) SuperReview {
	s := SuperReview{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    userID,
		CreatedAt: now,
	}
	return s.withContent(content)
}

// Update 返回整体替换内容后的副本
func (s SuperReview) Update(content SuperReviewContent, now time.Time) SuperReview {
	s = s.withContent(content)
	s.UpdatedAt = &now
	return s
}

// AuthoredBy 是否由该用户发布
func (s SuperReview) AuthoredBy(userID uuid.UUID) bool {
	return s.UserID == userID
}

func (s SuperReview) withContent(c SuperReviewContent) SuperReview {
	s.Ratings = c.Ratings.clone()
	s.Title = c.Title
	s.DetailedComment = c.DetailedComment
	s.Pros = c.Pros
	s.Cons = c.Cons
	s.Recommendation = c.Recommendation
	return s
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
