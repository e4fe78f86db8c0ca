package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/model"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/utils"
)

// posterField 海报上传的表单字段
const posterField = "posterImage"

type movieResponse struct {
	model.Movie
	PosterURL string `json:"poster_url"`
}

func toMovieResponse(m model.Movie) movieResponse {
	res := movieResponse{Movie: m}
	if m.HasPoster() {
		res.PosterURL = "/api/movies/" + m.ID.String() + "/poster"
	}
	return res
}

// AddMovie 新增电影
func (h *Handler) AddMovie(c *gin.Context) {
	var req service.AddMovieRequest
	if !bindJSON(c, &req) {
		return
	}

	movie, err := h.Services.Movie.Add(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Created(c, toMovieResponse(movie))
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	movie, err := h.Services.Movie.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, toMovieResponse(movie))
}

// ListMovies 电影列表，支持 limit/offset
func (h *Handler) ListMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	movies, err := h.Services.Movie.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		res = append(res, toMovieResponse(m))
	}
	utils.Success(c, res)
}

// UploadPoster 上传海报（multipart）
func (h *Handler) UploadPoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile(posterField)
	if err != nil {
		utils.BadRequest(c, "Poster file is required")
		return
	}

	maxBytes := h.posterMaxBytes()
	if file.Size > maxBytes {
		utils.BadRequest(c, "Poster too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.BadRequest(c, "Poster file is unreadable")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		utils.BadRequest(c, "Poster file is unreadable")
		return
	}

	movie, err := h.Services.Movie.UploadPoster(c.Request.Context(), id, data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, toMovieResponse(movie))
}

// GetPoster 返回海报图片
func (h *Handler) GetPoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	poster, err := h.Services.Movie.Poster(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, poster.ContentType, poster.Data)
}

func (h *Handler) posterMaxBytes() int64 {
	if h.Config != nil && h.Config.PosterMaxBytes > 0 {
		return h.Config.PosterMaxBytes
	}
	return service.DefaultPosterMaxBytes
}
