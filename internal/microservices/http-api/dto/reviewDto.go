package dto

import (
	"encoding/json"
	"math"
	"time"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
)

// CreateReviewDTO for posting a review. Both user_name and userName are
// accepted.
type CreateReviewDTO struct {
	UserName string   `json:"user_name" binding:"required,notblank,max=100"`
	Rating   *float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment  *string  `json:"comment" binding:"omitempty,max=2000"`
}

func (d *CreateReviewDTO) UnmarshalJSON(b []byte) error {
	type plain CreateReviewDTO
	var aux struct {
		plain
		UserNameAlias *string `json:"userName"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = CreateReviewDTO(aux.plain)
	if d.UserName == "" && aux.UserNameAlias != nil {
		d.UserName = *aux.UserNameAlias
	}
	return nil
}

// ReviewResponse for returning a stored review
type ReviewResponse struct {
	ID        int64     `json:"id"`
	ChurchID  int64     `json:"church_id"`
	UserName  string    `json:"user_name"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		ChurchID:  r.ChurchID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func FromModelsToReviewResponses(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for i := range list {
		out = append(out, *FromModelToReviewResponse(&list[i]))
	}
	return out
}

// RoundRating rounds to the single decimal a numeric(2,1) column holds.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
