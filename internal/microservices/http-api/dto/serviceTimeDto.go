package dto

import (
	"encoding/json"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
)

// CreateServiceTimeDTO for adding a weekly service. Field names are accepted
// both in snake_case and camelCase.
type CreateServiceTimeDTO struct {
	DayOfWeek   *int    `json:"day_of_week" binding:"required,min=0,max=6"` // 0 = Sunday
	StartTime   string  `json:"start_time" binding:"required,clocktime"`
	EndTime     string  `json:"end_time" binding:"required,clocktime"`
	ServiceType *string `json:"service_type" binding:"omitempty,max=100"`
	Language    *string `json:"language" binding:"omitempty,max=50"`
}

func (d *CreateServiceTimeDTO) UnmarshalJSON(b []byte) error {
	type plain CreateServiceTimeDTO
	var aux struct {
		plain
		DayOfWeekAlias   *int    `json:"dayOfWeek"`
		StartTimeAlias   *string `json:"startTime"`
		EndTimeAlias     *string `json:"endTime"`
		ServiceTypeAlias *string `json:"serviceType"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = CreateServiceTimeDTO(aux.plain)
	if d.DayOfWeek == nil {
		d.DayOfWeek = aux.DayOfWeekAlias
	}
	if d.StartTime == "" && aux.StartTimeAlias != nil {
		d.StartTime = *aux.StartTimeAlias
	}
	if d.EndTime == "" && aux.EndTimeAlias != nil {
		d.EndTime = *aux.EndTimeAlias
	}
	if d.ServiceType == nil {
		d.ServiceType = aux.ServiceTypeAlias
	}
	return nil
}

// ServiceTimeResponse for returning a stored service time
type ServiceTimeResponse struct {
	ID          int64            `json:"id"`
	ChurchID    int64            `json:"church_id"`
	DayOfWeek   int              `json:"day_of_week"`
	StartTime   models.ClockTime `json:"start_time"`
	EndTime     models.ClockTime `json:"end_time"`
	ServiceType *string          `json:"service_type"`
	Language    string           `json:"language"`
}

func FromModelToServiceTimeResponse(st *models.ServiceTime) *ServiceTimeResponse {
	return &ServiceTimeResponse{
		ID:          st.ID,
		ChurchID:    st.ChurchID,
		DayOfWeek:   st.DayOfWeek,
		StartTime:   st.StartTime,
		EndTime:     st.EndTime,
		ServiceType: st.ServiceType,
		Language:    st.Language,
	}
}

func FromModelsToServiceTimeResponses(list []models.ServiceTime) []ServiceTimeResponse {
	out := make([]ServiceTimeResponse, 0, len(list))
	for i := range list {
		out = append(out, *FromModelToServiceTimeResponse(&list[i]))
	}
	return out
}
