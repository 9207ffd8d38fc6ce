package auth

import (
	"context"
	"errors"
	"log"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/utils"
	"github.com/inanin-user/crm-system-sub001/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

type Service interface {
	Login(ctx context.Context, username, password string) (*models.Account, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	GetUserTokenVersion(ctx context.Context, userID uint) (int, error)
}

type service struct {
	accountRepo repositories.AccountRepository
}

func NewService(accountRepo repositories.AccountRepository) Service {
	return &service{
		accountRepo: accountRepo,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*models.Account, string, string, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		log.Printf("Login failed: account not found for username %q", username)
		return nil, "", "", ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, "", "", ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for account %d", account.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       account.ID,
		Username:     account.Username,
		Role:         account.Role,
		TokenVersion: account.TokenVersion,
		Permissions:  models.GetDefaultPermissions(account.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	account, err := s.accountRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", errors.New("account not found")
	}

	if account.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       account.ID,
		Username:     account.Username,
		Role:         account.Role,
		TokenVersion: account.TokenVersion,
		Permissions:  models.GetDefaultPermissions(account.Role),
	})
}

func (s *service) Logout(userID uint) error {
	return s.accountRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.New("failed to get account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	v := validation.New()
	v.Password("password", newPassword)
	if !v.Valid() {
		return errors.New(v.First())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	account.Password = string(hashedPassword)
	account.TokenVersion++ // Invalidate existing tokens

	if err := s.accountRepo.Update(account); err != nil {
		return errors.New("failed to update password")
	}

	return nil
}

func (s *service) GetUserTokenVersion(ctx context.Context, userID uint) (int, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.TokenVersion, nil
}
