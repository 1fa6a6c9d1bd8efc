package listingevents

import (
	"context"
	"encoding/json"

	"agricycle-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service appends and reads the moderation audit trail for listings.
type Service struct {
	DB *gorm.DB
}

// Record appends one event. data may be nil.
func (s *Service) Record(ctx context.Context, listingID uint, eventType string, actorID uint, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(&models.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		ActorID:   actorID,
		EventData: datatypes.JSON(b),
	}).Error
}

// ListForListing returns a listing's events, oldest first.
func (s *Service) ListForListing(ctx context.Context, listingID uint) ([]models.ListingEvent, error) {
	var events []models.ListingEvent
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
