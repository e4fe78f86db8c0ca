package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/utils"
)

// AddSuperReview 发布专业影评
func (h *Handler) AddSuperReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req service.SuperReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.Services.SuperReview.Add(c.Request.Context(), callerID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Created(c, review)
}

// GetSuperReview 专业影评详情
func (h *Handler) GetSuperReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.Services.SuperReview.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, review)
}

// MovieSuperReviews 电影下的专业影评
func (h *Handler) MovieSuperReviews(c *gin.Context) {
	movieID, ok := pathID(c, "movieId")
	if !ok {
		return
	}

	reviews, err := h.Services.SuperReview.FindByMovieID(c.Request.Context(), movieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, reviews)
}

// UpdateSuperReview 整体替换自己的专业影评
func (h *Handler) UpdateSuperReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.SuperReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.Services.SuperReview.Update(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, review)
}

// DeleteSuperReview 作者或管理员删除专业影评
func (h *Handler) DeleteSuperReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Services.SuperReview.Delete(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, nil)
}

// AdminDeleteSuperReview 管理员删除专业影评
func (h *Handler) AdminDeleteSuperReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Services.SuperReview.AdminDelete(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, nil)
}
