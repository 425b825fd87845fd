package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dondi-c/church-finder/internal/google"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPhotoWidth = 400
	maxPhotoWidth     = 1600

	// upstream image fetches get more time than database work
	photoTimeout = 15 * time.Second
)

// MapsHandler proxies the Google endpoints that need server-held keys
type MapsHandler struct {
	svc service.MapsService
}

func NewMapsHandler(svc service.MapsService) *MapsHandler {
	return &MapsHandler{svc: svc}
}

func (h *MapsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	maps := rg.Group("/maps")
	{
		maps.GET("/script", h.Script)
		maps.GET("/photo/:reference", h.Photo)
	}
	rg.GET("/churches/photos/:churchName", h.SearchChurchPhoto)
}

// Script hands the browser key to the map client
// GET /api/maps/script
func (h *MapsHandler) Script(c *gin.Context) {
	key, err := h.svc.ScriptKey()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Maps API key not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"apiKey": key})
}

// Photo streams a place photo
// GET /api/maps/photo/:reference?maxwidth=400
func (h *MapsHandler) Photo(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo reference"})
		return
	}

	maxWidth := defaultPhotoWidth
	if raw := c.Query("maxwidth"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 1 || w > maxPhotoWidth {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxwidth"})
			return
		}
		maxWidth = w
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), photoTimeout)
	defer cancel()

	photo, err := h.svc.PlacePhoto(ctx, reference, maxWidth)
	if err != nil {
		respondUpstreamError(c, err, "Failed to fetch photo")
		return
	}
	defer photo.Body.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	if photo.CacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.DataFromReader(http.StatusOK, photo.ContentLength, photo.ContentType, photo.Body, nil)
}

// SearchChurchPhoto finds an exterior image of a church by name
// GET /api/churches/photos/:churchName
func (h *MapsHandler) SearchChurchPhoto(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), photoTimeout)
	defer cancel()

	link, err := h.svc.SearchChurchPhoto(ctx, c.Param("churchName"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"imageUrl": link})
	case errors.Is(err, google.ErrNoResults):
		c.JSON(http.StatusNotFound, gin.H{"error": "No photos found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid church name"})
	default:
		respondUpstreamError(c, err, "Failed to search photos")
	}
}
