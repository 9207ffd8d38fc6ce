package models

// Named sequences.
const (
	CounterQRCodeNumber = "qrcode_number"
)

// MaxSequence is the largest value a counter can hold before wrapping to 1.
const MaxSequence = 9999

// Counter is a single-row-per-name sequence generator. Seq stays in
// [0, MaxSequence]; the increment wraps past MaxSequence back to 1 and is
// applied as one atomic statement at the storage layer.
type Counter struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null"`
	Seq  int    `gorm:"not null;default:0"`
}
