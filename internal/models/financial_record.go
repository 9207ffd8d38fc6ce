package models

import (
	"gorm.io/gorm"
)

// Financial record types
const (
	RecordTypeRenewal = "renewal"
)

// Payment methods
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// FinancialRecord captures money received by the club, currently renewal
// payments. Reference holds the Stripe token id for card payments.
type FinancialRecord struct {
	gorm.Model
	MemberID      uint    `gorm:"not null;index"`
	MemberName    string  `gorm:"not null"`
	RecordType    string  `gorm:"not null"`
	Amount        float64 `gorm:"not null"`
	TicketsAdded  int     `gorm:"not null"`
	PaymentMethod string  `gorm:"not null"`
	Reference     string
	RecordedBy    string
}
