// Package redemption implements quota consumption: one scanned code costs
// one ticket, debited with a conditional update and recorded in the
// append-only ledger inside a single database transaction.
package redemption

import (
	"context"
	"fmt"
	"log"
	"time"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"

	"github.com/google/uuid"
)

// TicketsPerRedemption is the debit applied per scan. Every product is a
// single serving, so one scan costs one ticket.
const TicketsPerRedemption = 1

type Service interface {
	// Redeem resolves the scanned code, debits the member's quota and
	// appends the ledger record. The debit and the record are written
	// together or not at all.
	Redeem(ctx context.Context, memberID uint, memberName string, rawPayload string) (*models.Transaction, error)

	MemberTransactions(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error)
	AllTransactions(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error)
}

type service struct {
	ledger   repositories.LedgerRepository
	resolver CodeResolver
	cache    AccountCache
	nowFn    func() time.Time
}

// NewService wires a redemption service. The cache is optional; pass nil
// to skip invalidation.
func NewService(ledger repositories.LedgerRepository, resolver CodeResolver, cache AccountCache) Service {
	if ledger == nil {
		panic("ledger repository is required")
	}
	if resolver == nil {
		panic("code resolver is required")
	}
	return &service{
		ledger:   ledger,
		resolver: resolver,
		cache:    cache,
		nowFn:    time.Now,
	}
}

func (s *service) Redeem(ctx context.Context, memberID uint, memberName string, rawPayload string) (*models.Transaction, error) {
	resolved, err := s.resolver.ResolveScan(ctx, rawPayload)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Reference:          uuid.NewString(),
		MemberID:           memberID,
		MemberName:         memberName,
		QRCodeNumber:       resolved.Number,
		ProductDescription: resolved.ProductDescription,
		Region:             resolved.RegionCode,
		QuotaUsed:          TicketsPerRedemption,
		TransactionDate:    s.nowFn(),
	}

	err = s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		change, err := tx.DebitTickets(ctx, memberID, TicketsPerRedemption)
		if err != nil {
			return err
		}
		txn.PreviousQuota = change.Previous
		txn.NewQuota = change.New
		return tx.CreateTransaction(txn)
	})
	if err != nil {
		switch err {
		case repositories.ErrInsufficientTickets:
			return nil, domainErrors.ErrInsufficientQuota
		case repositories.ErrAccountNotFound:
			return nil, domainErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("redemption failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAccount(ctx, memberID); err != nil {
			log.Printf("failed to invalidate account cache %d: %v", memberID, err)
		}
	}

	return txn, nil
}

func (s *service) MemberTransactions(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return s.ledger.ListByMember(ctx, memberID, limit, offset)
}

func (s *service) AllTransactions(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	return s.ledger.ListAll(ctx, limit, offset)
}
