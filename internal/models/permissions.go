package models

// Permission constants
const (
	// Wallet permissions
	PermissionWalletRead  = "wallet:read"
	PermissionWalletWrite = "wallet:write"

	// Profile permissions
	PermissionProfile = "user:profile"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin", "user":
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionProfile,
		}
	default:
		return []string{}
	}
}
