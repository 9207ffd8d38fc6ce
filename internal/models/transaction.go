package models

import (
	"time"
)

// Transaction is one redemption in the append-only quota ledger. Records
// are created once and never mutated; the QR code is referenced by number
// rather than foreign key so the record stays renderable even after the
// registry entry is deactivated.
type Transaction struct {
	ID                 uint      `gorm:"primarykey"`
	Reference          string    `gorm:"uniqueIndex;not null"`
	MemberID           uint      `gorm:"not null;index"`
	MemberName         string    `gorm:"not null"`
	QRCodeNumber       string    `gorm:"not null"`
	ProductDescription string
	Region             string
	QuotaUsed          int       `gorm:"not null"`
	PreviousQuota      int       `gorm:"not null"`
	NewQuota           int       `gorm:"not null"`
	TransactionDate    time.Time `gorm:"not null;index"`
	CreatedAt          time.Time
}
