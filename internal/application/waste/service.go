package waste

import (
	"context"

	"agricycle-backend/internal/application/listingevents"
	"agricycle-backend/internal/models"
	"agricycle-backend/internal/pkg/constants"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service implements the listing lifecycle: create, browse, moderate, delete.
// Role checks belong to the HTTP gate; the service assumes the caller's role
// and id have already been established.
type Service struct {
	DB     *gorm.DB
	Events *listingevents.Service
}

// ListingWithFarmer is the list-view row: listing columns plus the owner's
// display name.
type ListingWithFarmer struct {
	models.WasteListing
	FarmerName string `json:"farmer_name"`
}

// ListingDetail is the detail-view row: a prospective buyer also needs the
// farmer's contact fields.
type ListingDetail struct {
	models.WasteListing
	FarmerName  string `json:"farmer_name"`
	FarmerEmail string `json:"farmer_email"`
	FarmerPhone string `json:"farmer_phone"`
}

// ListFilter selects which listings a browse returns. All and Status are
// admin-only; the handler enforces that before calling List.
type ListFilter struct {
	All    bool
	Status string
}

// List returns listings joined with the owner's name, newest first. The
// default (no filter) view is the public catalog: approved listings only.
func (s *Service) List(ctx context.Context, f ListFilter) ([]ListingWithFarmer, error) {
	q := s.DB.WithContext(ctx).
		Model(&models.WasteListing{}).
		Select("waste_listings.*, users.name AS farmer_name").
		Joins("JOIN users ON users.id = waste_listings.farmer_id").
		Order("waste_listings.created_at DESC")

	switch {
	case f.All:
	case f.Status != "":
		q = q.Where("waste_listings.status = ?", f.Status)
	default:
		q = q.Where("waste_listings.status = ?", constants.StatusApproved)
	}

	var out []ListingWithFarmer
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one listing with the owner's contact attached. Status is
// not gated here: a caller holding the id may fetch an unapproved listing.
func (s *Service) GetByID(ctx context.Context, id uint) (*ListingDetail, error) {
	var out ListingDetail
	err := s.DB.WithContext(ctx).
		Model(&models.WasteListing{}).
		Select("waste_listings.*, users.name AS farmer_name, users.email AS farmer_email, users.phone AS farmer_phone").
		Joins("JOIN users ON users.id = waste_listings.farmer_id").
		Where("waste_listings.id = ?", id).
		Limit(1).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, ErrListingNotFound
	}
	return &out, nil
}

// CreateInput for a new listing. FarmerID comes from the caller's token
// claims, never from the client body.
type CreateInput struct {
	FarmerID uint
	Type     string
	Quantity string
	Price    float64
	Location string
	ImageURL *string
}

// Create persists a new listing. Status is forced to pending regardless of
// anything the client supplied.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.WasteListing, error) {
	if in.Type == "" || in.Quantity == "" || in.Price == 0 || in.Location == "" {
		return nil, ErrMissingFields
	}
	listing := &models.WasteListing{
		FarmerID: in.FarmerID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Price:    in.Price,
		Location: in.Location,
		ImageURL: in.ImageURL,
		Status:   constants.StatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	s.record(ctx, listing.ID, models.EventCreated, in.FarmerID, map[string]interface{}{
		"type":  listing.Type,
		"price": listing.Price,
	})
	return listing, nil
}

// ListMine returns every listing owned by farmerID, any status, newest first.
func (s *Service) ListMine(ctx context.Context, farmerID uint) ([]models.WasteListing, error) {
	var listings []models.WasteListing
	if err := s.DB.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// SetStatus overwrites a listing's moderation status. Any status may follow
// any other, including a re-set to the same value; there is no transition
// table and no terminal state.
func (s *Service) SetStatus(ctx context.Context, id uint, status string, actorID uint) (*models.WasteListing, error) {
	if !constants.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	var listing models.WasteListing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	from := listing.Status
	if err := s.DB.WithContext(ctx).Model(&listing).Update("status", status).Error; err != nil {
		return nil, err
	}
	listing.Status = status
	s.record(ctx, listing.ID, models.EventStatusChanged, actorID, map[string]interface{}{
		"from": from,
		"to":   status,
	})
	return &listing, nil
}

// Delete permanently removes a listing. Only the owning farmer or an admin may
// delete; the referenced image file is not cleaned up.
func (s *Service) Delete(ctx context.Context, id, callerID uint, callerRole string) error {
	var listing models.WasteListing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}
	if !CanModify(callerID, callerRole, &listing) {
		return ErrNotOwner
	}
	if err := s.DB.WithContext(ctx).Delete(&listing).Error; err != nil {
		return err
	}
	s.record(ctx, listing.ID, models.EventDeleted, callerID, map[string]interface{}{
		"status": listing.Status,
		"type":   listing.Type,
	})
	return nil
}

// ListEvents returns a listing's moderation audit trail, oldest first. The
// listing must exist; events for deleted listings are reachable only while
// the id is known, which is fine for an admin tool.
func (s *Service) ListEvents(ctx context.Context, id uint) ([]models.ListingEvent, error) {
	if s.Events == nil {
		return nil, nil
	}
	return s.Events.ListForListing(ctx, id)
}

// CanModify is the single owner-or-admin predicate shared by every
// owner-scoped operation.
func CanModify(callerID uint, callerRole string, l *models.WasteListing) bool {
	return callerRole == constants.RoleAdmin || l.FarmerID == callerID
}

// record appends an audit event. Event failures are logged, not propagated:
// the lifecycle operation itself already succeeded.
func (s *Service) record(ctx context.Context, listingID uint, eventType string, actorID uint, data map[string]interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(ctx, listingID, eventType, actorID, data); err != nil {
		log.Error().Err(err).Uint("listing_id", listingID).Str("event", eventType).Msg("waste: failed to record listing event")
	}
}
