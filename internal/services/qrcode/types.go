package qrcode

import "time"

// CurrentNumber is the non-mutating counter peek returned by the API.
type CurrentNumber struct {
	CurrentNumber string `json:"currentNumber"`
	Sequence      int    `json:"sequence"`
}

// DisplayLines are the two lines shown on the scanner screen.
type DisplayLines struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// ScanResult is the display record for a resolved code. RegionCode is kept
// alongside the localized name because the ledger stores the code.
type ScanResult struct {
	Number             string       `json:"number"`
	RegionCode         string       `json:"regionCode"`
	RegionName         string       `json:"regionName"`
	ProductDescription string       `json:"productDescription"`
	Price              float64      `json:"price"`
	FormattedDisplay   DisplayLines `json:"formattedDisplay"`
	CreatedAt          time.Time    `json:"createdAt"`
}
