package repositories

import (
	"context"
	"errors"

	"github.com/inanin-user/crm-system-sub001/internal/models"
)

var ErrInsufficientTickets = errors.New("insufficient tickets")

// QuotaChange reports a member's balance around a debit.
type QuotaChange struct {
	Previous int
	New      int
}

// LedgerRepository persists the append-only redemption ledger and the
// quota debits that feed it. DebitTickets and CreateTransaction are meant
// to run together inside ExecuteInTransaction so a ledger entry can never
// exist without its balance change, or vice versa.
type LedgerRepository interface {
	ExecuteInTransaction(fn func(tx LedgerRepository) error) error

	// DebitTickets decrements a member's quota and increments used_tickets
	// in one conditional statement guarded by quota >= amount. It fails
	// with ErrInsufficientTickets when the guard rejects the debit and
	// ErrAccountNotFound when no active member matches.
	DebitTickets(ctx context.Context, memberID uint, amount int) (QuotaChange, error)

	CreateTransaction(txn *models.Transaction) error
	ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error)
}
