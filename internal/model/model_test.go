package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cinecritic/internal/model"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestParseRole(t *testing.T) {
	for _, r := range model.Roles {
		got, ok := model.ParseRole(r.String())
		assert.True(t, ok)
		assert.Equal(t, r, got)
		assert.True(t, r.Valid())
	}

	for _, s := range []string{"", "user", "MODERATOR"} {
		_, ok := model.ParseRole(s)
		assert.False(t, ok, s)
	}
	assert.False(t, model.Role("ROOT").Valid())
}

func TestUser_Roles(t *testing.T) {
	u := model.NewUser("alice", "alice@example.com", "hash", now)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.False(t, u.CanWriteSuperReviews())

	critic := u.ChangeRole(model.RoleSuperReviewer)
	assert.True(t, critic.IsSuperReviewer())
	assert.True(t, critic.CanWriteSuperReviews())
	assert.False(t, critic.IsAdmin())
	assert.Equal(t, model.RoleUser, u.Role, "receiver keeps its role")

	admin := u.ChangeRole(model.RoleAdmin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanWriteSuperReviews())
	assert.Equal(t, u.ID, admin.ID)
}

func TestMovie_WithPoster(t *testing.T) {
	m := model.NewMovie("Heat", 1995, 170, "", "", now)
	assert.False(t, m.HasPoster())

	data := []byte{1, 2, 3}
	withPoster := m.WithPoster(model.Poster{Data: data, ContentType: "image/png"})
	data[0] = 9

	require.True(t, withPoster.HasPoster())
	assert.Equal(t, byte(1), withPoster.Poster.Data[0])
	assert.Equal(t, m.ID, withPoster.ID)
	assert.Equal(t, m.CreatedAt, withPoster.CreatedAt)
	assert.False(t, m.HasPoster())
}

func TestReview_Update(t *testing.T) {
	author := uuid.New()
	r := model.NewReview(uuid.New(), author, 7, "fine", now)
	assert.Nil(t, r.UpdatedAt)
	assert.True(t, r.AuthoredBy(author))
	assert.False(t, r.AuthoredBy(uuid.New()))

	later := now.Add(time.Hour)
	updated := r.Update(9, "better", later)
	assert.Equal(t, 9, updated.Rating)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, later, *updated.UpdatedAt)
	assert.Equal(t, r.CreatedAt, updated.CreatedAt)
	assert.Nil(t, r.UpdatedAt)
}

func TestSuperReview_DoesNotAliasRatings(t *testing.T) {
	overall := 8
	content := model.SuperReviewContent{Ratings: model.Ratings{Overall: &overall}, Title: "t"}
	sr := model.NewSuperReview(uuid.New(), uuid.New(), content, now)

	overall = 1
	assert.Equal(t, 8, *sr.Ratings.Overall)
	assert.Nil(t, sr.UpdatedAt)

	updated := sr.Update(model.SuperReviewContent{Recommendation: true}, now.Add(time.Minute))
	assert.Nil(t, updated.Ratings.Overall)
	assert.True(t, updated.Recommendation)
	assert.Equal(t, sr.ID, updated.ID)
	assert.Equal(t, 8, *sr.Ratings.Overall)
}
