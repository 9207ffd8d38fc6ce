package repositories

import (
	"context"
	"errors"

	"github.com/inanin-user/crm-system-sub001/internal/models"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Update(account *models.Account) error
	IncrementTokenVersion(id uint) error

	// Renew atomically applies a top-up to a member-role account:
	// added_tickets += amount, quota += amount, renewal_count += 1.
	Renew(ctx context.Context, memberID uint, amount int) (*models.Account, error)

	Deactivate(ctx context.Context, id uint) error
	ListByRoles(ctx context.Context, roles []string, limit, offset int) ([]models.Account, int64, error)
}
