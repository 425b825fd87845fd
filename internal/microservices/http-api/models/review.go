package models

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ChurchID  int64     `json:"church_id" gorm:"not null;index"`
	UserName  string    `json:"user_name" gorm:"not null"`
	Rating    float64   `json:"rating" gorm:"type:numeric(2,1);not null;check:rating >= 1 AND rating <= 5"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
