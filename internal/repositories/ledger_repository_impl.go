package repositories

import (
	"context"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(tx LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}

// DebitTickets is the one write that may race with itself: two concurrent
// redemptions against the same member must not both spend the last ticket.
// The quota >= amount guard inside a single UPDATE serializes that at the
// storage layer; a read-then-write here would reintroduce the double-spend.
func (r *ledgerRepository) DebitTickets(ctx context.Context, memberID uint, amount int) (QuotaChange, error) {
	var newQuota int
	res := r.db.WithContext(ctx).Raw(`
		UPDATE accounts
		SET quota = quota - ?, used_tickets = used_tickets + ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL AND is_active AND quota >= ?
		RETURNING quota`,
		amount, amount, memberID, amount,
	).Scan(&newQuota)
	if res.Error != nil {
		return QuotaChange{}, res.Error
	}

	if res.RowsAffected == 0 {
		// Distinguish a rejected debit from a missing member.
		var count int64
		err := r.db.WithContext(ctx).Model(&models.Account{}).
			Where("id = ? AND is_active = ? AND role IN ?", memberID, true, models.MemberRoles).
			Count(&count).Error
		if err != nil {
			return QuotaChange{}, err
		}
		if count == 0 {
			return QuotaChange{}, ErrAccountNotFound
		}
		return QuotaChange{}, ErrInsufficientTickets
	}

	return QuotaChange{Previous: newQuota + amount, New: newQuota}, nil
}

func (r *ledgerRepository) CreateTransaction(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

func (r *ledgerRepository) ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var records []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("member_id = ?", memberID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("transaction_date DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func (r *ledgerRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	var records []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("transaction_date DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}
