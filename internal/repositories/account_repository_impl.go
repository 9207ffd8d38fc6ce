package repositories

import (
	"context"
	"errors"
	"log"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories/cache"

	"gorm.io/gorm"
)

type accountRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewAccountRepository creates a new account repository. The cache is
// optional; pass nil to skip caching.
func NewAccountRepository(db *gorm.DB, cacheService *cache.CacheService) AccountRepository {
	return &accountRepository{db: db, cache: cacheService}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("account", "id", id)
		if account, err := r.cache.GetAccount(ctx, key); err == nil {
			return account, nil
		}
	}

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheAccount(ctx, &account); err != nil {
			log.Printf("failed to cache account %d: %v", account.ID, err)
		}
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("account", "username", username)
		if account, err := r.cache.GetAccount(ctx, key); err == nil {
			return account, nil
		}
	}

	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheAccount(ctx, &account); err != nil {
			log.Printf("failed to cache account %d: %v", account.ID, err)
		}
	}
	return &account, nil
}

func (r *accountRepository) Update(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return err
	}
	r.invalidate(account.ID)
	return nil
}

func (r *accountRepository) IncrementTokenVersion(id uint) error {
	res := r.db.Model(&models.Account{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *accountRepository) Renew(ctx context.Context, memberID uint, amount int) (*models.Account, error) {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND is_active = ? AND role IN ?", memberID, true, models.MemberRoles).
		Updates(map[string]interface{}{
			"added_tickets": gorm.Expr("added_tickets + ?", amount),
			"quota":         gorm.Expr("quota + ?", amount),
			"renewal_count": gorm.Expr("renewal_count + 1"),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAccountNotFound
	}

	r.invalidate(memberID)

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, memberID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *accountRepository) ListByRoles(ctx context.Context, roles []string, limit, offset int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Account{}).Where("role IN ?", roles)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&accounts).Error
	return accounts, total, err
}

func (r *accountRepository) invalidate(id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateAccount(context.Background(), id); err != nil {
		log.Printf("failed to invalidate account cache %d: %v", id, err)
	}
}
