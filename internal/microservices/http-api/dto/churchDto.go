package dto

import (
	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
)

// CreateChurchDTO is the body of POST /api/churches
type CreateChurchDTO struct {
	PlaceID      string  `json:"place_id" binding:"required,max=255"`
	Name         string  `json:"name" binding:"required,max=255"`
	Vicinity     string  `json:"vicinity" binding:"required,max=500"`
	Lat          string  `json:"lat" binding:"required,latitude"`
	Lng          string  `json:"lng" binding:"required,longitude"`
	Rating       *string `json:"rating" binding:"omitempty,numeric"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Website      *string `json:"website" binding:"omitempty,max=500"`
	Denomination *string `json:"denomination" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
}

func (d *CreateChurchDTO) ToModel() *models.Church {
	return &models.Church{
		PlaceID:      d.PlaceID,
		Name:         d.Name,
		Vicinity:     d.Vicinity,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Rating:       d.Rating,
		Phone:        d.Phone,
		Website:      d.Website,
		Denomination: d.Denomination,
		Description:  d.Description,
	}
}

// UpdateChurchDTO is a partial update of the business fields. A nil field is
// left alone, an empty string clears the column.
type UpdateChurchDTO struct {
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Website      *string `json:"website" binding:"omitempty,max=500"`
	Denomination *string `json:"denomination" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
}

// Fields converts the DTO into the column map used by the repository.
func (d *UpdateChurchDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(column string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			fields[column] = nil
			return
		}
		fields[column] = *v
	}
	set("phone", d.Phone)
	set("website", d.Website)
	set("denomination", d.Denomination)
	set("description", d.Description)
	return fields
}

// ChurchSeed carries the places-provider fields sent as query parameters on
// GET /api/churches/:placeId. They are only needed when the church does not
// exist yet.
type ChurchSeed struct {
	Name     string `form:"name"`
	Vicinity string `form:"vicinity"`
	Lat      string `form:"lat"`
	Lng      string `form:"lng"`
	Rating   string `form:"rating"`
}

// ChurchResponse is the flat church shape
type ChurchResponse struct {
	ID           int64   `json:"id"`
	PlaceID      string  `json:"place_id"`
	Name         string  `json:"name"`
	Vicinity     string  `json:"vicinity"`
	Lat          string  `json:"lat"`
	Lng          string  `json:"lng"`
	Rating       *string `json:"rating"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	Denomination *string `json:"denomination"`
	Description  *string `json:"description"`
}

// ChurchListItem is a church with its service times, used by GET /api/churches
type ChurchListItem struct {
	ChurchResponse
	ServiceTimes []ServiceTimeResponse `json:"serviceTimes"`
}

// ReviewSummary aggregates a church's reviews
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// ChurchDetailResponse is the aggregated church. Both arrays are always
// present, even when empty.
type ChurchDetailResponse struct {
	ChurchResponse
	ServiceTimes  []ServiceTimeResponse `json:"serviceTimes"`
	Reviews       []ReviewResponse      `json:"reviews"`
	ReviewSummary ReviewSummary         `json:"reviewSummary"`
}

func FromModelToChurchResponse(c *models.Church) ChurchResponse {
	return ChurchResponse{
		ID:           c.ID,
		PlaceID:      c.PlaceID,
		Name:         c.Name,
		Vicinity:     c.Vicinity,
		Lat:          c.Lat,
		Lng:          c.Lng,
		Rating:       c.Rating,
		Phone:        c.Phone,
		Website:      c.Website,
		Denomination: c.Denomination,
		Description:  c.Description,
	}
}

func FromModelToChurchListItem(c *models.Church) ChurchListItem {
	return ChurchListItem{
		ChurchResponse: FromModelToChurchResponse(c),
		ServiceTimes:   FromModelsToServiceTimeResponses(c.ServiceTimes),
	}
}

// FromModelToChurchDetail builds the aggregated response.
func FromModelToChurchDetail(c *models.Church, summary ReviewSummary) *ChurchDetailResponse {
	return &ChurchDetailResponse{
		ChurchResponse: FromModelToChurchResponse(c),
		ServiceTimes:   FromModelsToServiceTimeResponses(c.ServiceTimes),
		Reviews:        FromModelsToReviewResponses(c.Reviews),
		ReviewSummary:  summary,
	}
}
