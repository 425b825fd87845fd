package handler

import (
	"context"
	"net/http"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers review routes on the /api group
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/churches/:churchId/reviews", h.Create)
}

// Create adds a review to a church
// POST /api/churches/:churchId/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	churchID, ok := parseIDParam(c, "churchId")
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.CreateReview(ctx, churchID, &req)
	if err != nil {
		respondError(c, err, "Invalid review data")
		return
	}
	c.JSON(http.StatusCreated, review)
}
