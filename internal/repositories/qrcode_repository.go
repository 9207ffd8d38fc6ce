package repositories

import (
	"context"
	"errors"

	"github.com/inanin-user/crm-system-sub001/internal/models"
)

var ErrQRCodeNotFound = errors.New("QR code not found")

// QRCodeRepository persists the QR code registry.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) error
	GetActiveByNumber(ctx context.Context, number string) (*models.QRCode, error)
	Deactivate(ctx context.Context, number string) error
	List(ctx context.Context, limit, offset int) ([]models.QRCode, int64, error)
}
