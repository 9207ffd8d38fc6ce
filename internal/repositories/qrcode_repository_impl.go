package repositories

import (
	"context"
	"log"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories/cache"

	"gorm.io/gorm"
)

type qrCodeRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewQRCodeRepository(db *gorm.DB, cacheService *cache.CacheService) QRCodeRepository {
	return &qrCodeRepository{db: db, cache: cacheService}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithContext(ctx).Create(qr).Error
}

func (r *qrCodeRepository) GetActiveByNumber(ctx context.Context, number string) (*models.QRCode, error) {
	if r.cache != nil {
		if qr, err := r.cache.GetQRCode(ctx, number); err == nil && qr.IsActive {
			return qr, nil
		}
	}

	var qr models.QRCode
	err := r.db.WithContext(ctx).
		Where("qr_code_number = ? AND is_active = ?", number, true).
		First(&qr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrQRCodeNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheQRCode(ctx, &qr); err != nil {
			log.Printf("failed to cache QR code %s: %v", qr.QRCodeNumber, err)
		}
	}
	return &qr, nil
}

func (r *qrCodeRepository) Deactivate(ctx context.Context, number string) error {
	res := r.db.WithContext(ctx).Model(&models.QRCode{}).
		Where("qr_code_number = ?", number).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQRCodeNotFound
	}

	if r.cache != nil {
		if err := r.cache.InvalidateQRCode(ctx, number); err != nil {
			log.Printf("failed to invalidate QR code cache %s: %v", number, err)
		}
	}
	return nil
}

func (r *qrCodeRepository) List(ctx context.Context, limit, offset int) ([]models.QRCode, int64, error) {
	var codes []models.QRCode
	var total int64

	query := r.db.WithContext(ctx).Model(&models.QRCode{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("qr_code_number ASC").Limit(limit).Offset(offset).Find(&codes).Error
	return codes, total, err
}
