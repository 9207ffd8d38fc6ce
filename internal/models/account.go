package models

import (
	"gorm.io/gorm"
)

// Account roles
const (
	RoleAdmin         = "admin"
	RoleTrainer       = "trainer"
	RoleMember        = "member"
	RoleRegularMember = "regular-member"
	RolePremiumMember = "premium-member"
)

// MemberRoles lists every role that carries a ticket quota.
var MemberRoles = []string{RoleMember, RoleRegularMember, RolePremiumMember}

// Account is a CRM user. Member-role accounts carry the ticket ledger:
// Quota is the remaining balance and always equals
// InitialTickets + AddedTickets - UsedTickets, because every mutation
// adjusts both sides in a single statement.
type Account struct {
	gorm.Model
	Username       string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null" json:"-"`
	Name           string `gorm:"not null"`
	Phone          string
	Role           string `gorm:"not null;default:'member'"`
	InitialTickets int    `gorm:"not null;default:0"`
	AddedTickets   int    `gorm:"not null;default:0"`
	UsedTickets    int    `gorm:"not null;default:0"`
	Quota          int    `gorm:"not null;default:0"`
	RenewalCount   int    `gorm:"not null;default:0"`
	IsActive       bool   `gorm:"not null;default:true"`
	TokenVersion   int    `gorm:"default:1"`
}

// IsMemberRole reports whether the role carries a quota.
func IsMemberRole(role string) bool {
	for _, r := range MemberRoles {
		if r == role {
			return true
		}
	}
	return false
}
