// Package qrcode implements the QR registry: counter-driven code
// generation, the current-number peek, and read-only scan resolution.
package qrcode

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
)

type Service interface {
	// Generate assigns the next counter value as a zero-padded 4-digit
	// number and creates the registry entry.
	Generate(ctx context.Context, createdBy, regionCode, productDescription string, price float64) (*models.QRCode, error)

	// CurrentNumber peeks at the counter without mutating it.
	CurrentNumber(ctx context.Context) (*CurrentNumber, error)

	// ResolveScan decodes a scanned JSON payload and renders the display
	// record for the code it names. Read-only: no quota or ledger writes.
	ResolveScan(ctx context.Context, rawPayload string) (*ScanResult, error)

	Deactivate(ctx context.Context, number string) error
	List(ctx context.Context, limit, offset int) ([]models.QRCode, int64, error)
}

type service struct {
	repo     repositories.QRCodeRepository
	counters repositories.CounterRepository
}

func NewService(repo repositories.QRCodeRepository, counters repositories.CounterRepository) Service {
	if repo == nil {
		panic("QR code repository is required")
	}
	if counters == nil {
		panic("counter repository is required")
	}
	return &service{repo: repo, counters: counters}
}

func (s *service) Generate(ctx context.Context, createdBy, regionCode, productDescription string, price float64) (*models.QRCode, error) {
	if !models.ValidRegionCode(regionCode) {
		return nil, domainErrors.ErrInvalidRegion
	}
	if !models.ValidProductDescription(productDescription) {
		return nil, domainErrors.ErrInvalidProduct
	}

	seq, err := s.counters.Next(ctx, models.CounterQRCodeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate code number: %w", err)
	}

	qr := &models.QRCode{
		QRCodeNumber:       fmt.Sprintf("%04d", seq),
		RegionCode:         regionCode,
		ProductDescription: productDescription,
		Price:              price,
		IsActive:           true,
		CreatedBy:          createdBy,
	}

	if err := s.repo.Create(ctx, qr); err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	return qr, nil
}

func (s *service) CurrentNumber(ctx context.Context) (*CurrentNumber, error) {
	seq, err := s.counters.Current(ctx, models.CounterQRCodeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read counter: %w", err)
	}
	return &CurrentNumber{
		CurrentNumber: fmt.Sprintf("%04d", seq),
		Sequence:      seq,
	}, nil
}

// scanPayload is the wire shape of a scanned code. Number is a pointer so
// an absent field is distinguishable from an empty one.
type scanPayload struct {
	Number *string `json:"number"`
}

func (s *service) ResolveScan(ctx context.Context, rawPayload string) (*ScanResult, error) {
	var payload scanPayload
	if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	if payload.Number == nil || *payload.Number == "" {
		return nil, domainErrors.ErrMissingField
	}

	qr, err := s.repo.GetActiveByNumber(ctx, *payload.Number)
	if err != nil {
		if err == repositories.ErrQRCodeNotFound {
			return nil, domainErrors.ErrQRCodeNotFound
		}
		return nil, fmt.Errorf("failed to look up QR code: %w", err)
	}

	regionName := models.RegionDisplayName(qr.RegionCode)
	return &ScanResult{
		Number:             qr.QRCodeNumber,
		RegionCode:         qr.RegionCode,
		RegionName:         regionName,
		ProductDescription: qr.ProductDescription,
		Price:              qr.Price,
		FormattedDisplay: DisplayLines{
			Line1: regionName,
			Line2: fmt.Sprintf("%s：$%s", qr.ProductDescription, formatPrice(qr.Price)),
		},
		CreatedAt: qr.CreatedAt,
	}, nil
}

func (s *service) Deactivate(ctx context.Context, number string) error {
	if err := s.repo.Deactivate(ctx, number); err != nil {
		if err == repositories.ErrQRCodeNotFound {
			return domainErrors.ErrQRCodeNotFound
		}
		return fmt.Errorf("failed to deactivate QR code: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.QRCode, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// formatPrice renders whole-dollar prices without a decimal point.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
