// Package member implements account lifecycle and the renewal (top-up)
// side of the ticket ledger.
package member

import (
	"context"
	"fmt"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries a new account request.
type RegisterInput struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	InitialTickets int    `json:"initialTickets"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Account, error)
	Get(ctx context.Context, id uint) (*models.Account, error)

	// Renew tops up a member: addedTickets += amount, quota += amount,
	// renewalCount += 1, applied atomically.
	Renew(ctx context.Context, memberID uint, amount int) (*models.Account, error)

	Deactivate(ctx context.Context, id uint) error
	ListMembers(ctx context.Context, limit, offset int) ([]models.Account, int64, error)
}

type service struct {
	repo repositories.AccountRepository
}

func NewService(repo repositories.AccountRepository) Service {
	if repo == nil {
		panic("account repository is required")
	}
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username: input.Username,
		Password: string(hashedPassword),
		Name:     input.Name,
		Phone:    input.Phone,
		Role:     role,
		IsActive: true,
	}

	// Only member-role accounts carry a quota; the initial grant seeds
	// both sides of the ledger identity.
	if models.IsMemberRole(role) && input.InitialTickets > 0 {
		account.InitialTickets = input.InitialTickets
		account.Quota = input.InitialTickets
	}

	if err := s.repo.Create(account); err != nil {
		if err == repositories.ErrDuplicateUsername {
			return nil, domainErrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, domainErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *service) Renew(ctx context.Context, memberID uint, amount int) (*models.Account, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	account, err := s.repo.Renew(ctx, memberID, amount)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, domainErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to renew member: %w", err)
	}
	return account, nil
}

func (s *service) Deactivate(ctx context.Context, id uint) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if err == repositories.ErrAccountNotFound {
			return domainErrors.ErrMemberNotFound
		}
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

func (s *service) ListMembers(ctx context.Context, limit, offset int) ([]models.Account, int64, error) {
	return s.repo.ListByRoles(ctx, models.MemberRoles, limit, offset)
}
