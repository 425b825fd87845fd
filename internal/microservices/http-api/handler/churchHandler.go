package handler

import (
	"context"
	"net/http"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChurchHandler struct {
	svc service.ChurchService
}

func NewChurchHandler(svc service.ChurchService) *ChurchHandler {
	return &ChurchHandler{svc: svc}
}

// RegisterRoutes registers church routes on the /api group
func (h *ChurchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/churches.geojson", h.GeoJSON)

	churches := rg.Group("/churches")
	{
		churches.GET("", h.List)
		churches.GET("/denominations", h.Denominations)
		churches.GET("/:placeId", h.GetByPlaceID)
		churches.POST("", h.Create)
		churches.PATCH("/:id", h.Update)
	}
}

// List returns every church with its service times
// GET /api/churches
func (h *ChurchHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.List(ctx)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByPlaceID returns the aggregated church, creating it from the query
// parameters on first lookup.
// GET /api/churches/:placeId?name=&vicinity=&lat=&lng=&rating=
func (h *ChurchHandler) GetByPlaceID(c *gin.Context) {
	var seed dto.ChurchSeed
	if err := c.ShouldBindQuery(&seed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid church data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	church, err := h.svc.GetDetail(ctx, c.Param("placeId"), seed)
	if err != nil {
		respondError(c, err, "Invalid church data")
		return
	}
	c.JSON(http.StatusOK, church)
}

// Create adds a church from a full body
// POST /api/churches
func (h *ChurchHandler) Create(c *gin.Context) {
	var in dto.CreateChurchDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid church data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	church, err := h.svc.Create(ctx, &in)
	if err != nil {
		respondError(c, err, "Invalid church data")
		return
	}
	c.JSON(http.StatusCreated, church)
}

// Update changes phone, website, denomination or description
// PATCH /api/churches/:id
func (h *ChurchHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateChurchDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid church data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	church, err := h.svc.Update(ctx, id, &in)
	if err != nil {
		respondError(c, err, "Invalid church data")
		return
	}
	c.JSON(http.StatusOK, church)
}

// Denominations lists the distinct denominations for the filter
// GET /api/churches/denominations
func (h *ChurchHandler) Denominations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.ListDenominations(ctx)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GeoJSON returns every church as a point feature
// GET /api/churches.geojson
func (h *ChurchHandler) GeoJSON(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	fc, err := h.svc.GeoJSON(ctx)
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, err, "Invalid request")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", b)
}
