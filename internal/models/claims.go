package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Member permissions
	PermissionQuotaRead      = "quota:read"
	PermissionQuotaRedeem    = "quota:redeem"
	PermissionLedgerRead     = "ledger:read"
	PermissionChangePassword = "account:change-password"

	// QR registry permissions
	PermissionQRCodeRead  = "qrcode:read"
	PermissionQRCodeWrite = "qrcode:write"

	// Trainer permissions
	PermissionTrainerProfileRead  = "trainer:read"
	PermissionTrainerProfileWrite = "trainer:write"

	// Member management permissions
	PermissionMemberRead  = "member:read"
	PermissionMemberWrite = "member:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionQuotaRead,
			PermissionLedgerRead,
			PermissionQRCodeRead,
			PermissionQRCodeWrite,
			PermissionMemberRead,
			PermissionMemberWrite,
			PermissionTrainerProfileRead,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleTrainer:
		return []string{
			PermissionQRCodeRead,
			PermissionMemberRead,
			PermissionTrainerProfileRead,
			PermissionTrainerProfileWrite,
			PermissionChangePassword,
		}
	case RoleMember, RoleRegularMember, RolePremiumMember:
		return []string{
			PermissionQuotaRead,
			PermissionQuotaRedeem,
			PermissionLedgerRead,
			PermissionQRCodeRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
