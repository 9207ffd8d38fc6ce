// Package payment records renewal payments and handles card payments via
// Stripe tokenization.
package payment

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/services/member"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

var ErrCardDetailsRequired = errors.New("card details required for card payment")

// CardDetails carries raw card input for tokenization. It is never stored.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth string `json:"expMonth"`
	ExpYear  string `json:"expYear"`
	CVC      string `json:"cvc"`
}

// RenewalRequest is one renewal payment.
type RenewalRequest struct {
	MemberID      uint
	Tickets       int
	Amount        float64
	PaymentMethod string
	Card          *CardDetails
	RecordedBy    string
}

type Service interface {
	// ProcessRenewal charges (card) or records (cash) a renewal payment,
	// applies the ticket top-up, and writes the financial record.
	ProcessRenewal(ctx context.Context, req RenewalRequest) (*models.Account, *models.FinancialRecord, error)
}

type service struct {
	members member.Service
	records repositories.FinancialRecordRepository
}

func NewService(members member.Service, records repositories.FinancialRecordRepository) Service {
	if members == nil {
		panic("member service is required")
	}
	if records == nil {
		panic("financial record repository is required")
	}
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &service{members: members, records: records}
}

func (s *service) ProcessRenewal(ctx context.Context, req RenewalRequest) (*models.Account, *models.FinancialRecord, error) {
	reference := ""
	if req.PaymentMethod == models.PaymentMethodCard {
		if req.Card == nil {
			return nil, nil, ErrCardDetailsRequired
		}
		stripeToken, err := s.tokenizeCard(req.Card)
		if err != nil {
			return nil, nil, err
		}
		reference = stripeToken
	}

	account, err := s.members.Renew(ctx, req.MemberID, req.Tickets)
	if err != nil {
		return nil, nil, err
	}

	record := &models.FinancialRecord{
		MemberID:      account.ID,
		MemberName:    account.Name,
		RecordType:    models.RecordTypeRenewal,
		Amount:        req.Amount,
		TicketsAdded:  req.Tickets,
		PaymentMethod: req.PaymentMethod,
		Reference:     reference,
		RecordedBy:    req.RecordedBy,
	}
	if err := s.records.Create(ctx, record); err != nil {
		// The top-up already landed; surface the bookkeeping failure.
		return account, nil, fmt.Errorf("renewal applied but financial record failed: %w", err)
	}

	return account, record, nil
}

func (s *service) tokenizeCard(card *CardDetails) (string, error) {
	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.String(card.ExpMonth),
			ExpYear:  stripe.String(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}

	stripeToken, err := token.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe tokenization failed: %w", err)
	}
	return stripeToken.ID, nil
}
