package models

import (
	"time"

	"gorm.io/datatypes"
)

// Listing event types.
const (
	EventCreated       = "CREATED"
	EventStatusChanged = "STATUS_CHANGED"
	EventDeleted       = "DELETED"
)

// ListingEvent is one entry in a listing's moderation audit trail. Events are
// never deleted, even when the listing itself is removed.
type ListingEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ListingID uint           `gorm:"not null;index" json:"listing_id"`
	EventType string         `gorm:"type:varchar(30);not null" json:"event_type"`
	ActorID   uint           `gorm:"not null" json:"actor_id"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}
