package repositories

import (
	"context"
	"errors"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTrainerProfileNotFound = errors.New("trainer profile not found")

// TrainerRepository persists trainer profiles.
type TrainerRepository interface {
	GetByAccountID(ctx context.Context, accountID uint) (*models.TrainerProfile, error)
	Upsert(ctx context.Context, profile *models.TrainerProfile) error
	List(ctx context.Context, limit, offset int) ([]models.TrainerProfile, int64, error)
}

type trainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) GetByAccountID(ctx context.Context, accountID uint) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTrainerProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the profile in one statement keyed on account_id, so two
// concurrent first-time saves cannot race on the unique index.
func (r *trainerRepository) Upsert(ctx context.Context, profile *models.TrainerProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "bio", "specialties", "years_experience", "region", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *trainerRepository) List(ctx context.Context, limit, offset int) ([]models.TrainerProfile, int64, error) {
	var profiles []models.TrainerProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TrainerProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("display_name ASC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}
