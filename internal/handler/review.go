package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/utils"
)

// AddReview 发布影评
func (h *Handler) AddReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req service.AddReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.Services.Review.Add(c.Request.Context(), callerID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Created(c, review)
}

// GetReview 影评详情
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.Services.Review.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, review)
}

// MovieReviews 电影下的影评
func (h *Handler) MovieReviews(c *gin.Context) {
	movieID, ok := pathID(c, "movieId")
	if !ok {
		return
	}

	reviews, err := h.Services.Review.FindByMovieID(c.Request.Context(), movieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, reviews)
}

// UpdateReview 修改自己的影评
func (h *Handler) UpdateReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.Services.Review.Update(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, review)
}

// DeleteReview 删除自己的影评
func (h *Handler) DeleteReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Services.Review.Delete(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, nil)
}

// AdminDeleteReview 管理员删除影评
func (h *Handler) AdminDeleteReview(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Services.Review.AdminDelete(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, nil)
}
