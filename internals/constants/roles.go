package constants

import (
	"fmt"
	"strings"
)

// Role names. "admin" is the bootstrap role checked by name.
const (
	RoleAdmin            = "admin"
	RoleOwner            = "owner"
	RoleResidentialOwner = "residential_owner"
	RoleCommercialOwner  = "commercial_owner"
	RoleAgent            = "agent"
	RoleBuilder          = "builder"
	RoleTenant           = "tenant"
	RoleBuyer            = "buyer"
)

const (
	ErrOnlyAdminsCanAccess = "Only admins can access %s"
	ErrOnlyOwnerOrAdmin    = "Only the owner or an admin can modify this %s"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func OwnershipError(resource string) string {
	return fmt.Sprintf(ErrOnlyOwnerOrAdmin, resource)
}

var OwnerRoles = []string{
	RoleOwner,
	RoleResidentialOwner,
	RoleCommercialOwner,
	RoleAgent,
	RoleBuilder,
}

// IsOwnerRole decides which dashboard a role name maps to.
func IsOwnerRole(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range OwnerRoles {
		if r == name {
			return true
		}
	}
	return false
}

// OwnerRoleForSegment picks the owner role granted by OTP-driven account creation.
func OwnerRoleForSegment(segment string) string {
	if strings.EqualFold(strings.TrimSpace(segment), SegmentCommercial) {
		return RoleCommercialOwner
	}
	return RoleResidentialOwner
}
