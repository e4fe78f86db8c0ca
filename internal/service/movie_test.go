package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/service/servicetest"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func idPtr(v uuid.UUID) *uuid.UUID { return &v }

func validMovie() *service.AddMovieRequest {
	return &service.AddMovieRequest{
		Title:           "Spirited Away",
		ReleaseYear:     intPtr(2001),
		DurationMinutes: intPtr(125),
		Description:     strPtr("A girl wanders into the spirit world."),
		TrailerURL:      strPtr("https://example.com/trailer"),
	}
}

func TestMovieService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("valid movie echoes fields", func(t *testing.T) {
		env := servicetest.NewEnv()
		svc := env.Services()

		movie, err := svc.Movie.Add(ctx, validMovie())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, movie.ID)
		assert.Equal(t, "Spirited Away", movie.Title)
		assert.Equal(t, 2001, movie.ReleaseYear)
		assert.Equal(t, 125, movie.DurationMinutes)
		assert.Equal(t, "A girl wanders into the spirit world.", movie.Description)
		assert.Equal(t, "https://example.com/trailer", movie.TrailerURL)
		assert.False(t, movie.HasPoster())

		stored, err := svc.Movie.FindByID(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, movie, stored)
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		env := servicetest.NewEnv()
		req := validMovie()
		req.Description = nil
		req.TrailerURL = nil

		movie, err := env.Services().Movie.Add(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, movie.Description)
		assert.Empty(t, movie.TrailerURL)
	})

	t.Run("duration bounds are inclusive", func(t *testing.T) {
		for _, minutes := range []int{1, 500} {
			env := servicetest.NewEnv()
			req := validMovie()
			req.DurationMinutes = intPtr(minutes)
			_, err := env.Services().Movie.Add(ctx, req)
			assert.NoError(t, err, "duration %d", minutes)
		}
	})

	t.Run("release year may equal current year", func(t *testing.T) {
		env := servicetest.NewEnv()
		req := validMovie()
		req.ReleaseYear = intPtr(env.Clock.Now().Year())
		_, err := env.Services().Movie.Add(ctx, req)
		assert.NoError(t, err)
	})

	cases := []struct {
		name   string
		mutate func(r *service.AddMovieRequest)
		msg    string
	}{
		{"blank title", func(r *service.AddMovieRequest) { r.Title = "   " }, "Invalid title"},
		{"missing year", func(r *service.AddMovieRequest) { r.ReleaseYear = nil }, "Invalid year"},
		{"future year", func(r *service.AddMovieRequest) { r.ReleaseYear = intPtr(2027) }, "Invalid year"},
		{"missing duration", func(r *service.AddMovieRequest) { r.DurationMinutes = nil }, "Invalid minutes duration"},
		{"zero duration", func(r *service.AddMovieRequest) { r.DurationMinutes = intPtr(0) }, "Invalid minutes duration"},
		{"duration too long", func(r *service.AddMovieRequest) { r.DurationMinutes = intPtr(501) }, "Invalid minutes duration"},
		{"description too long", func(r *service.AddMovieRequest) { r.Description = strPtr(strings.Repeat("a", 2001)) }, "Description too long"},
		{"trailer without scheme", func(r *service.AddMovieRequest) { r.TrailerURL = strPtr("example.com/trailer") }, "Invalid trailer"},
		{"trailer with other scheme", func(r *service.AddMovieRequest) { r.TrailerURL = strPtr("ftp://example.com/t") }, "Invalid trailer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := servicetest.NewEnv()
			req := validMovie()
			tc.mutate(req)

			_, err := env.Services().Movie.Add(ctx, req)
			require.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
			assert.Equal(t, tc.msg, apperr.MessageOf(err))
			assert.Equal(t, 0, env.Store.WriteCount())
		})
	}

	t.Run("description at limit is accepted", func(t *testing.T) {
		env := servicetest.NewEnv()
		req := validMovie()
		req.Description = strPtr(strings.Repeat("影", 2000))
		_, err := env.Services().Movie.Add(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("nil request", func(t *testing.T) {
		env := servicetest.NewEnv()
		_, err := env.Services().Movie.Add(ctx, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		env := servicetest.NewEnv()
		env.Store.SetErr(errors.New("db down"))
		_, err := env.Services().Movie.Add(ctx, validMovie())
		assert.True(t, apperr.Is(err, apperr.KindInternal))
	})
}

func TestMovieService_FindByID(t *testing.T) {
	env := servicetest.NewEnv()
	_, err := env.Services().Movie.FindByID(context.Background(), uuid.New())
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Movie not found", apperr.MessageOf(err))
}

func TestMovieService_List(t *testing.T) {
	ctx := context.Background()
	env := servicetest.NewEnv()
	first := env.SeedMovie("First")
	env.Clock.Advance(time.Minute)
	second := env.SeedMovie("Second")
	env.Clock.Advance(time.Minute)
	third := env.SeedMovie("Third")
	svc := env.Services()

	movies, err := svc.Movie.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, third.ID, movies[0].ID)
	assert.Equal(t, first.ID, movies[2].ID)

	page, err := svc.Movie.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	empty, err := svc.Movie.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMovieService_Poster(t *testing.T) {
	ctx := context.Background()

	t.Run("upload then fetch", func(t *testing.T) {
		env := servicetest.NewEnv()
		movie := env.SeedMovie("Alien")
		svc := env.Services()

		updated, err := svc.Movie.UploadPoster(ctx, movie.ID, pngHeader)
		require.NoError(t, err)
		assert.Equal(t, movie.ID, updated.ID)
		assert.Equal(t, movie.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.HasPoster())

		poster, err := svc.Movie.Poster(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "image/png", poster.ContentType)
		assert.True(t, bytes.Equal(pngHeader, poster.Data))
	})

	t.Run("upload replaces previous poster", func(t *testing.T) {
		env := servicetest.NewEnv()
		movie := env.SeedMovie("Alien")
		svc := env.Services()

		_, err := svc.Movie.UploadPoster(ctx, movie.ID, pngHeader)
		require.NoError(t, err)

		gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
		_, err = svc.Movie.UploadPoster(ctx, movie.ID, gif)
		require.NoError(t, err)

		poster, err := svc.Movie.Poster(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "image/gif", poster.ContentType)
	})

	t.Run("rejects non image", func(t *testing.T) {
		env := servicetest.NewEnv()
		movie := env.SeedMovie("Alien")
		writes := env.Store.WriteCount()

		_, err := env.Services().Movie.UploadPoster(ctx, movie.ID, []byte("just some text"))
		require.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, "Poster must be an image", apperr.MessageOf(err))
		assert.Equal(t, writes, env.Store.WriteCount())
	})

	t.Run("rejects empty and oversized", func(t *testing.T) {
		env := servicetest.NewEnv()
		env.Deps.PosterMaxBytes = 16
		movie := env.SeedMovie("Alien")
		svc := env.Services()

		_, err := svc.Movie.UploadPoster(ctx, movie.ID, nil)
		assert.Equal(t, "Poster is empty", apperr.MessageOf(err))

		_, err = svc.Movie.UploadPoster(ctx, movie.ID, pngHeader)
		assert.Equal(t, "Poster too large", apperr.MessageOf(err))
	})

	t.Run("unknown movie", func(t *testing.T) {
		env := servicetest.NewEnv()
		_, err := env.Services().Movie.UploadPoster(ctx, uuid.New(), pngHeader)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("movie without poster", func(t *testing.T) {
		env := servicetest.NewEnv()
		movie := env.SeedMovie("Alien")
		_, err := env.Services().Movie.Poster(ctx, movie.ID)
		require.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Equal(t, "Poster not found", apperr.MessageOf(err))
	})
}

func TestMovieService_ConcurrentPosterReads(t *testing.T) {
	ctx := context.Background()
	env := servicetest.NewEnv()
	movie := env.SeedMovie("Alien")
	svc := env.Services()
	_, err := svc.Movie.UploadPoster(ctx, movie.ID, pngHeader)
	require.NoError(t, err)

	const readers = 16
	types := make([]string, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.Movie.Poster(ctx, movie.ID)
			if err == nil {
				types[i] = p.ContentType
			}
		}(i)
	}
	wg.Wait()

	for _, ct := range types {
		assert.Equal(t, "image/png", ct)
	}
}
