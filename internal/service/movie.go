package service

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

const (
	// DefaultPosterMaxBytes 海报默认大小上限
	DefaultPosterMaxBytes = 5 << 20

	defaultListLimit = 20
	maxListLimit     = 100
)

// MovieService 电影与海报
type MovieService struct {
	movies         MovieRepository
	posterMaxBytes int64
	now            func() time.Time
	log            *zap.SugaredLogger
	sf             singleflight.Group // 同一电影的并发海报读取只查一次库
}

// NewMovieService 创建电影服务
func NewMovieService(d Deps) *MovieService {
	d = d.withDefaults()
	return &MovieService{
		movies:         d.Movies,
		posterMaxBytes: d.PosterMaxBytes,
		now:            d.Now,
		log:            d.Logger,
	}
}

// Add 校验并保存新电影
func (s *MovieService) Add(ctx context.Context, req *AddMovieRequest) (model.Movie, error) {
	now := s.now()
	if err := validateAddMovie(req, now.Year()); err != nil {
		return model.Movie{}, err
	}

	movie := model.NewMovie(
		strings.TrimSpace(req.Title),
		*req.ReleaseYear,
		*req.DurationMinutes,
		deref(req.Description),
		strings.TrimSpace(deref(req.TrailerURL)),
		now,
	)
	if err := s.movies.Save(ctx, movie); err != nil {
		return model.Movie{}, wrapInternal(err)
	}

	s.log.Infow("新增电影", "movie_id", movie.ID, "title", movie.Title)
	return movie, nil
}

// FindByID 查询电影
func (s *MovieService) FindByID(ctx context.Context, id uuid.UUID) (model.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return model.Movie{}, wrapInternal(err)
	}
	if movie == nil {
		return model.Movie{}, apperr.NotFound("Movie not found")
	}
	return *movie, nil
}

// List 按创建时间倒序分页
func (s *MovieService) List(ctx context.Context, limit, offset int) ([]model.Movie, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	movies, err := s.movies.List(ctx, limit, offset)
	if err != nil {
		return nil, wrapInternal(err)
	}
	return movies, nil
}

// UploadPoster 替换电影海报，内容必须是图片
func (s *MovieService) UploadPoster(ctx context.Context, movieID uuid.UUID, data []byte) (model.Movie, error) {
	if len(data) == 0 {
		return model.Movie{}, apperr.Validation("Poster is empty")
	}
	if int64(len(data)) > s.posterMaxBytes {
		return model.Movie{}, apperr.Validation("Poster too large")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return model.Movie{}, apperr.Validation("Poster must be an image")
	}

	movie, err := s.FindByID(ctx, movieID)
	if err != nil {
		return model.Movie{}, err
	}

	updated := movie.WithPoster(model.Poster{Data: data, ContentType: mt.String()})
	if err := s.movies.Save(ctx, updated); err != nil {
		return model.Movie{}, wrapInternal(err)
	}

	s.log.Infow("上传海报", "movie_id", movieID, "content_type", mt.String(), "bytes", len(data))
	return updated, nil
}

// Poster 返回电影海报，返回的数据只读
func (s *MovieService) Poster(ctx context.Context, movieID uuid.UUID) (model.Poster, error) {
	v, err, _ := s.sf.Do(movieID.String(), func() (interface{}, error) {
		movie, err := s.FindByID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if !movie.HasPoster() {
			return nil, apperr.NotFound("Poster not found")
		}
		return *movie.Poster, nil
	})
	if err != nil {
		return model.Poster{}, err
	}
	return v.(model.Poster), nil
}
