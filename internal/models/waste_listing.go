package models

import (
	"time"
)

// WasteListing is a farmer-submitted offer of agricultural waste. Quantity is
// free text (no unit parsing); moderation status controls public visibility.
type WasteListing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FarmerID  uint      `gorm:"not null;index" json:"farmer_id"`
	Type      string    `gorm:"not null" json:"type"`
	Quantity  string    `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Location  string    `gorm:"not null" json:"location"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url"`
	Status    string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (WasteListing) TableName() string {
	return "waste_listings"
}
