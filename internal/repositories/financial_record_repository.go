package repositories

import (
	"context"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"gorm.io/gorm"
)

// FinancialRecordRepository persists money-received records.
type FinancialRecordRepository interface {
	Create(ctx context.Context, record *models.FinancialRecord) error
	ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.FinancialRecord, int64, error)
}

type financialRecordRepository struct {
	db *gorm.DB
}

func NewFinancialRecordRepository(db *gorm.DB) FinancialRecordRepository {
	return &financialRecordRepository{db: db}
}

func (r *financialRecordRepository) Create(ctx context.Context, record *models.FinancialRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *financialRecordRepository) ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.FinancialRecord, int64, error) {
	var records []models.FinancialRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FinancialRecord{}).Where("member_id = ?", memberID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}
