package constants

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	RoleAdmin  = "ADMIN"
	RoleTenant = "TENANT"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTenant,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func ValidRole(role string) bool {
	return lo.Contains(AllRoles, role)
}
