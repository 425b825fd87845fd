package handler

import (
	"context"
	"net/http"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ServiceTimeHandler struct {
	svc service.ServiceTimeService
}

func NewServiceTimeHandler(svc service.ServiceTimeService) *ServiceTimeHandler {
	return &ServiceTimeHandler{svc: svc}
}

func (h *ServiceTimeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/churches/:churchId/service-times", h.Create)
}

// Create adds a weekly service time to a church
// POST /api/churches/:churchId/service-times
func (h *ServiceTimeHandler) Create(c *gin.Context) {
	churchID, ok := parseIDParam(c, "churchId")
	if !ok {
		return
	}

	var req dto.CreateServiceTimeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service time data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	st, err := h.svc.CreateServiceTime(ctx, churchID, &req)
	if err != nil {
		respondError(c, err, "Invalid service time data")
		return
	}
	c.JSON(http.StatusCreated, st)
}
