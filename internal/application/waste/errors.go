package waste

import "errors"

var (
	ErrMissingFields   = errors.New("Please add all required fields")
	ErrInvalidStatus   = errors.New("Invalid status value")
	ErrListingNotFound = errors.New("Listing not found")
	ErrNotOwner        = errors.New("Not authorized to delete this listing")
)
