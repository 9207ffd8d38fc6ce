package models

import (
	"gorm.io/gorm"
)

// Region codes used on printed QR codes.
const (
	RegionWanChai    = "WC"
	RegionWongTaiSin = "WTS"
	RegionShekMun    = "SM"
)

// regionNames maps region codes to their display names.
// Codes missing from the table pass through verbatim.
var regionNames = map[string]string{
	RegionWanChai:    "灣仔",
	RegionWongTaiSin: "黃大仙",
	RegionShekMun:    "石門",
}

// RegionDisplayName returns the localized name for a region code.
func RegionDisplayName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}

// ValidRegionCode reports whether code is a known region.
func ValidRegionCode(code string) bool {
	_, ok := regionNames[code]
	return ok
}

// The two products a code can represent.
const (
	ProductShake = "奶昔"
	ProductTea   = "茶"
)

// ValidProductDescription reports whether the description is one of the
// fixed products.
func ValidProductDescription(desc string) bool {
	return desc == ProductShake || desc == ProductTea
}

// QRCode is a registry entry mapping a 4-digit code number to a region,
// product and price. Entries are deactivated, never deleted, so ledger
// records that reference them by number stay renderable.
type QRCode struct {
	gorm.Model
	QRCodeNumber       string  `gorm:"uniqueIndex;not null;size:4"`
	RegionCode         string  `gorm:"not null"`
	ProductDescription string  `gorm:"not null"`
	Price              float64 `gorm:"not null"`
	IsActive           bool    `gorm:"not null;default:true"`
	CreatedBy          string  `gorm:"not null"`
}
