package models

// DefaultLanguage is used when a service time is added without a language.
const DefaultLanguage = "English"

type ServiceTime struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ChurchID    int64     `json:"church_id" gorm:"not null;index"`
	DayOfWeek   int       `json:"day_of_week" gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6"` // 0 = Sunday
	StartTime   ClockTime `json:"start_time" gorm:"type:time;not null"`
	EndTime     ClockTime `json:"end_time" gorm:"type:time;not null"`
	ServiceType *string   `json:"service_type"` // e.g. "Sunday Mass", "Bible Study"
	Language    string    `json:"language" gorm:"not null;default:English"`
}

func (ServiceTime) TableName() string {
	return "service_times"
}
