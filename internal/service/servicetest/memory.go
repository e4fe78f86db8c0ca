// Package servicetest 提供测试用的内存仓库
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
)

// Store 内存实现全部仓库接口，注入错误后所有操作返回该错误
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]model.User
	movies       map[uuid.UUID]model.Movie
	reviews      map[uuid.UUID]model.Review
	superReviews map[uuid.UUID]model.SuperReview

	err    error
	writes int
}

// NewStore 创建内存仓库
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]model.User),
		movies:       make(map[uuid.UUID]model.Movie),
		reviews:      make(map[uuid.UUID]model.Review),
		superReviews: make(map[uuid.UUID]model.SuperReview),
	}
}

// Users 用户仓库视图
func (s *Store) Users() *Users { return &Users{s} }

// Movies 电影仓库视图
func (s *Store) Movies() *Movies { return &Movies{s} }

// Reviews 影评仓库视图
func (s *Store) Reviews() *Reviews { return &Reviews{s} }

// SuperReviews 专业影评仓库视图
func (s *Store) SuperReviews() *SuperReviews { return &SuperReviews{s} }

// SetErr 设置注入的错误
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// WriteCount 写操作次数
func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Users 内存用户仓库
type Users struct{ s *Store }

func (r *Users) Save(_ context.Context, u model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return apperr.Conflict("Email already registered")
		}
	}
	r.s.users[u.ID] = u
	r.s.writes++
	return nil
}

func (r *Users) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) List(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Movies 内存电影仓库
type Movies struct{ s *Store }

func (r *Movies) Save(_ context.Context, m model.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	r.s.movies[m.ID] = m
	r.s.writes++
	return nil
}

func (r *Movies) FindByID(_ context.Context, id uuid.UUID) (*model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *Movies) List(_ context.Context, limit, offset int) ([]model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	all := make([]model.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []model.Movie{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Reviews 内存影评仓库，(电影, 作者) 唯一
type Reviews struct{ s *Store }

func (r *Reviews) Save(_ context.Context, rv model.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for id, other := range r.s.reviews {
		if id != rv.ID && other.MovieID == rv.MovieID && other.UserID == rv.UserID {
			return apperr.Conflict("You have already reviewed this movie")
		}
	}
	r.s.reviews[rv.ID] = rv
	r.s.writes++
	return nil
}

func (r *Reviews) FindByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r *Reviews) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []model.Review{}
	for _, rv := range r.s.reviews {
		if rv.MovieID == movieID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Reviews) FindByMovieAndUser(_ context.Context, movieID, userID uuid.UUID) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, rv := range r.s.reviews {
		if rv.MovieID == movieID && rv.UserID == userID {
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *Reviews) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	delete(r.s.reviews, id)
	r.s.writes++
	return nil
}

// SuperReviews 内存专业影评仓库
type SuperReviews struct{ s *Store }

func (r *SuperReviews) Save(_ context.Context, sr model.SuperReview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	r.s.superReviews[sr.ID] = sr
	r.s.writes++
	return nil
}

func (r *SuperReviews) FindByID(_ context.Context, id uuid.UUID) (*model.SuperReview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	sr, ok := r.s.superReviews[id]
	if !ok {
		return nil, nil
	}
	return &sr, nil
}

func (r *SuperReviews) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]model.SuperReview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []model.SuperReview{}
	for _, sr := range r.s.superReviews {
		if sr.MovieID == movieID {
			out = append(out, sr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SuperReviews) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	delete(r.s.superReviews, id)
	r.s.writes++
	return nil
}
