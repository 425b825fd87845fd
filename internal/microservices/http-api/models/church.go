package models

// Church is identified internally by ID and externally by the immutable
// PlaceID assigned by the places provider.
type Church struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaceID      string  `json:"place_id" gorm:"uniqueIndex;not null"`
	Name         string  `json:"name" gorm:"not null"`
	Vicinity     string  `json:"vicinity" gorm:"not null"`
	Lat          string  `json:"lat" gorm:"not null"`
	Lng          string  `json:"lng" gorm:"not null"`
	Rating       *string `json:"rating"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	Denomination *string `json:"denomination"`
	Description  *string `json:"description"`

	// association
	ServiceTimes []ServiceTime `json:"serviceTimes,omitempty" gorm:"foreignKey:ChurchID"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:ChurchID"`
}

func (Church) TableName() string {
	return "churches"
}
