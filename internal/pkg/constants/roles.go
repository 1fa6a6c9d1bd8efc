package constants

// Account roles.
const (
	RoleFarmer  = "farmer"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// RegistrableRoles are the roles a caller may pick at registration. Admin is
// excluded on purpose: admin accounts are created directly in the database.
var RegistrableRoles = []string{RoleFarmer, RoleCompany}

// IsRegistrableRole returns true if role can be chosen through /api/auth/register.
func IsRegistrableRole(role string) bool {
	for _, r := range RegistrableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Listing moderation statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatuses is the set of allowed waste_listings.status values.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// IsValidStatus returns true if status is one of the allowed enum values.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
