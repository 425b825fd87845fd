package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dondi-c/church-finder/internal/google"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/repository"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"
)

const requestTimeout = 5 * time.Second

// respondError maps service and repository errors to a status and a generic
// body. invalidMessage is the body used for validation failures.
func respondError(c *gin.Context, err error, invalidMessage string) {
	log := zerolog.Ctx(c.Request.Context())

	switch {
	case errors.Is(err, service.ErrValidation):
		log.Debug().Err(err).Msg("rejected request")
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMessage})
	case errors.Is(err, repository.ErrChurchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
	case errors.Is(err, repository.ErrDuplicatePlace):
		c.JSON(http.StatusConflict, gin.H{"error": "Church already exists for this place"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondUpstreamError passes a Google status through with a generic body.
// Transport failures become 502.
func respondUpstreamError(c *gin.Context, err error, message string) {
	log := zerolog.Ctx(c.Request.Context())

	var upstream *google.UpstreamError
	if errors.As(err, &upstream) {
		log.Warn().
			Str("service", upstream.Service).
			Int("status", upstream.StatusCode).
			Str("body", upstream.Body).
			Msg("upstream request failed")
		c.JSON(upstream.StatusCode, gin.H{"error": message})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("upstream unreachable")
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid church ID"})
		return 0, false
	}
	return id, true
}
