package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

const (
	maxMovieDuration        = 500
	maxMovieDescription     = 2000
	minRating               = 1
	maxRating               = 10
	maxReviewComment        = 1000
	maxSuperReviewTitle     = 200
	maxSuperReviewComment   = 5000
	maxSuperReviewProsCons  = 2000
	maxBcryptPasswordLength = 72
)

var trailerURLPattern = regexp.MustCompile(`^https?://.*$`)

// AddMovieRequest 新增电影请求
type AddMovieRequest struct {
	Title           string  `json:"title"`
	ReleaseYear     *int    `json:"release_year"`
	DurationMinutes *int    `json:"duration_minutes"`
	Description     *string `json:"description"`
	TrailerURL      *string `json:"trailer_url"`
}

// AddReviewRequest 新增影评请求
type AddReviewRequest struct {
	MovieID *uuid.UUID `json:"movie_id"`
	Rating  *int       `json:"rating"`
	Comment *string    `json:"comment"`
}

// UpdateReviewRequest 修改影评请求，为空的字段保持原值
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// SuperReviewRequest 新增或修改专业影评请求，修改时忽略 MovieID
type SuperReviewRequest struct {
	MovieID         *uuid.UUID `json:"movie_id"`
	OverallRating   *int       `json:"overall_rating"`
	ScriptRating    *int       `json:"script_rating"`
	ActingRating    *int       `json:"acting_rating"`
	EffectsRating   *int       `json:"effects_rating"`
	MusicRating     *int       `json:"music_rating"`
	Title           *string    `json:"title"`
	DetailedComment *string    `json:"detailed_comment"`
	Pros            *string    `json:"pros"`
	Cons            *string    `json:"cons"`
	Recommendation  *bool      `json:"recommendation"`
}

// content 转为领域内容，空指针视为缺省
func (r SuperReviewRequest) content() model.SuperReviewContent {
	return model.SuperReviewContent{
		Ratings: model.Ratings{
			Overall: r.OverallRating,
			Script:  r.ScriptRating,
			Acting:  r.ActingRating,
			Effects: r.EffectsRating,
			Music:   r.MusicRating,
		},
		Title:           deref(r.Title),
		DetailedComment: deref(r.DetailedComment),
		Pros:            deref(r.Pros),
		Cons:            deref(r.Cons),
		Recommendation:  r.Recommendation != nil && *r.Recommendation,
	}
}

func validateAddMovie(req *AddMovieRequest, currentYear int) error {
	if req == nil {
		return apperr.Validation("Invalid request")
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Validation("Invalid title")
	}
	if req.ReleaseYear == nil || *req.ReleaseYear > currentYear {
		return apperr.Validation("Invalid year")
	}
	if req.DurationMinutes == nil || *req.DurationMinutes < 1 || *req.DurationMinutes > maxMovieDuration {
		return apperr.Validation("Invalid minutes duration")
	}
	if req.Description != nil && length(*req.Description) > maxMovieDescription {
		return apperr.Validation("Description too long")
	}
	if req.TrailerURL != nil && strings.TrimSpace(*req.TrailerURL) != "" {
		if !trailerURLPattern.MatchString(*req.TrailerURL) {
			return apperr.Validation("Invalid trailer")
		}
	}
	return nil
}

func validateAddReview(req *AddReviewRequest) error {
	if req == nil {
		return apperr.Validation("Invalid request")
	}
	if req.MovieID == nil || *req.MovieID == uuid.Nil {
		return apperr.Validation("Invalid movie ID")
	}
	if req.Rating == nil || !ratingInRange(*req.Rating) {
		return apperr.Validation("Rating must be between 1 and 10")
	}
	if req.Comment != nil && length(*req.Comment) > maxReviewComment {
		return apperr.Validation("Comment too long")
	}
	return nil
}

func validateUpdateReview(req *UpdateReviewRequest) error {
	if req == nil {
		return nil
	}
	if req.Rating != nil && !ratingInRange(*req.Rating) {
		return apperr.Validation("Rating must be between 1 and 10")
	}
	if req.Comment != nil && length(*req.Comment) > maxReviewComment {
		return apperr.Validation("Comment too long")
	}
	return nil
}

func validateAddSuperReview(req *SuperReviewRequest) error {
	if req == nil {
		return apperr.Validation("Invalid request")
	}
	if req.MovieID == nil || *req.MovieID == uuid.Nil {
		return apperr.Validation("Invalid movie ID")
	}
	return validateSuperReviewContent(req)
}

func validateSuperReviewContent(req *SuperReviewRequest) error {
	ratings := []struct {
		value *int
		msg   string
	}{
		{req.OverallRating, "Overall rating must be between 1 and 10"},
		{req.ScriptRating, "Script rating must be between 1 and 10"},
		{req.ActingRating, "Acting rating must be between 1 and 10"},
		{req.EffectsRating, "Effects rating must be between 1 and 10"},
		{req.MusicRating, "Music rating must be between 1 and 10"},
	}
	for _, r := range ratings {
		if r.value != nil && !ratingInRange(*r.value) {
			return apperr.Validation(r.msg)
		}
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return apperr.Validation("Invalid title")
		}
		if length(*req.Title) > maxSuperReviewTitle {
			return apperr.Validation("Title too long")
		}
	}
	if req.DetailedComment != nil && length(*req.DetailedComment) > maxSuperReviewComment {
		return apperr.Validation("Detailed comment too long")
	}
	if req.Pros != nil && length(*req.Pros) > maxSuperReviewProsCons {
		return apperr.Validation("Pros section too long")
	}
	if req.Cons != nil && length(*req.Cons) > maxSuperReviewProsCons {
		return apperr.Validation("Cons section too long")
	}
	return nil
}

func ratingInRange(v int) bool {
	return v >= minRating && v <= maxRating
}

// length 按字符计数
func length(s string) int {
	return utf8.RuneCountInString(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
