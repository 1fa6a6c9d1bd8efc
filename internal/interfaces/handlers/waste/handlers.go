package waste

import (
	"strconv"

	uploadsvc "agricycle-backend/internal/application/uploads"
	wastesvc "agricycle-backend/internal/application/waste"
	"agricycle-backend/internal/middleware"
	"agricycle-backend/internal/pkg/constants"
	"agricycle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles waste listing handlers with their services.
type Handlers struct {
	Service *wastesvc.Service
	Uploads *uploadsvc.Service
}

// List GET /api/waste — public catalog of approved listings. The all=true and
// status filters expose unmoderated listings, so they are admin-only.
func (h *Handlers) List(c *fiber.Ctx) error {
	filter := wastesvc.ListFilter{
		All:    c.Query("all") == "true",
		Status: c.Query("status"),
	}
	if filter.All || filter.Status != "" {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return response.Unauthorized(c, "Not authorized, token failed")
		}
		if claims.Role != constants.RoleAdmin {
			return response.Error(c, "Forbidden: insufficient role", fiber.StatusForbidden)
		}
	}

	listings, err := h.Service.List(c.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("waste: list failed")
		return response.Error(c, "Server error fetching listings", fiber.StatusInternalServerError)
	}
	return response.SuccessList(c, "Listings fetched successfully", listings, len(listings))
}

// Mine GET /api/waste/my — the calling farmer's own listings, any status.
func (h *Handlers) Mine(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	listings, err := h.Service.ListMine(c.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("waste: list mine failed")
		return response.Error(c, "Server error fetching listings", fiber.StatusInternalServerError)
	}
	return response.SuccessList(c, "Listings fetched successfully", listings, len(listings))
}

// GetByID GET /api/waste/:id — one listing with the farmer's contact detail.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	listing, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Listing fetched successfully", listing)
}

// Create POST /api/waste — multipart form from a farmer; optional image part.
func (h *Handlers) Create(c *fiber.Ctx) error {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil && c.FormValue("price") != "" {
		return response.Error(c, "Invalid price value", fiber.StatusBadRequest)
	}

	var imageURL *string
	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		ref, uerr := h.Uploads.SaveImage(file)
		if uerr != nil {
			switch uerr {
			case uploadsvc.ErrUnsupportedType, uploadsvc.ErrFileTooLarge:
				return response.Error(c, uerr.Error(), fiber.StatusBadRequest)
			default:
				log.Error().Err(uerr).Msg("waste: image upload failed")
				return response.Error(c, "Server error storing image", fiber.StatusInternalServerError)
			}
		}
		imageURL = &ref
	}

	claims := middleware.GetClaims(c)
	listing, err := h.Service.Create(c.Context(), wastesvc.CreateInput{
		FarmerID: claims.UserID,
		Type:     c.FormValue("type"),
		Quantity: c.FormValue("quantity"),
		Price:    price,
		Location: c.FormValue("location"),
		ImageURL: imageURL,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing)
}

// UpdateStatus PATCH /api/waste/:id/status — admin moderation overwrite.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, wastesvc.ErrInvalidStatus.Error(), fiber.StatusBadRequest)
	}

	claims := middleware.GetClaims(c)
	listing, err := h.Service.SetStatus(c.Context(), id, body.Status, claims.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Listing "+listing.Status, listing)
}

// Delete DELETE /api/waste/:id — owner or admin only; ownership is checked in
// the service against the stored row.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	claims := middleware.GetClaims(c)
	if err := h.Service.Delete(c.Context(), id, claims.UserID, claims.Role); err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Listing deleted successfully", nil)
}

// Events GET /api/waste/:id/events — moderation audit trail (admin).
func (h *Handlers) Events(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	events, err := h.Service.ListEvents(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("waste: list events failed")
		return response.Error(c, "Server error fetching events", fiber.StatusInternalServerError)
	}
	return response.SuccessList(c, "Events fetched successfully", events, len(events))
}

func listingID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch err {
	case wastesvc.ErrMissingFields, wastesvc.ErrInvalidStatus:
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case wastesvc.ErrListingNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case wastesvc.ErrNotOwner:
		return response.Error(c, err.Error(), fiber.StatusForbidden)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("waste: unexpected error")
		return response.Error(c, "Server error", fiber.StatusInternalServerError)
	}
}
