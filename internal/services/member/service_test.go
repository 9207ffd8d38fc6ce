package member

import (
	"context"
	"testing"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountRepo struct {
	accounts map[uint]*models.Account
	nextID   uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uint]*models.Account)}
}

func (r *fakeAccountRepo) Create(account *models.Account) error {
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) Update(account *models.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) IncrementTokenVersion(id uint) error {
	account, ok := r.accounts[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.TokenVersion++
	return nil
}

func (r *fakeAccountRepo) Renew(ctx context.Context, memberID uint, amount int) (*models.Account, error) {
	account, ok := r.accounts[memberID]
	if !ok || !account.IsActive || !models.IsMemberRole(account.Role) {
		return nil, repositories.ErrAccountNotFound
	}
	account.AddedTickets += amount
	account.Quota += amount
	account.RenewalCount++
	return account, nil
}

func (r *fakeAccountRepo) Deactivate(ctx context.Context, id uint) error {
	account, ok := r.accounts[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.IsActive = false
	return nil
}

func (r *fakeAccountRepo) ListByRoles(ctx context.Context, roles []string, limit, offset int) ([]models.Account, int64, error) {
	var out []models.Account
	for _, account := range r.accounts {
		for _, role := range roles {
			if account.Role == role {
				out = append(out, *account)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func TestRegisterSeedsInitialQuota(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Username:       "chantaiman",
		Password:       "passw0rd1",
		Name:           "Chan Tai Man",
		Role:           models.RoleMember,
		InitialTickets: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, account.InitialTickets)
	assert.Equal(t, 0, account.AddedTickets)
	assert.Equal(t, 0, account.UsedTickets)
	assert.Equal(t, 10, account.Quota)
	assert.True(t, account.IsActive)

	// Password is stored hashed.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("passw0rd1")))
}

func TestRegisterNonMemberGetsNoQuota(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Username:       "coach",
		Password:       "passw0rd1",
		Name:           "Coach Lee",
		Role:           models.RoleTrainer,
		InitialTickets: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, account.InitialTickets)
	assert.Equal(t, 0, account.Quota)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "chantaiman",
		Password: "passw0rd1",
		Name:     "Chan Tai Man",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "chantaiman",
		Password: "passw0rd2",
		Name:     "Someone Else",
	})
	assert.Equal(t, domainErrors.ErrUsernameTaken, err)
	assert.Len(t, repo.accounts, 1)
}

func TestRegisterDefaultsToMemberRole(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	account, err := svc.Register(context.Background(), RegisterInput{
		Username: "walkin",
		Password: "passw0rd1",
		Name:     "Walk In",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, account.Role)
}

func TestRenewTopsUpBothSides(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.Create(&models.Account{
		Username:       "chantaiman",
		Name:           "Chan Tai Man",
		Role:           models.RoleMember,
		IsActive:       true,
		InitialTickets: 10,
		AddedTickets:   3,
		UsedTickets:    8,
		Quota:          5,
	})
	svc := NewService(repo)

	account, err := svc.Renew(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, account.AddedTickets)
	assert.Equal(t, 7, account.Quota)
	assert.Equal(t, 1, account.RenewalCount)

	// Ledger identity holds after the top-up.
	assert.Equal(t, account.InitialTickets+account.AddedTickets-account.UsedTickets, account.Quota)
}

func TestRenewRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newFakeAccountRepo())

	_, err := svc.Renew(context.Background(), 1, 0)
	assert.Equal(t, domainErrors.ErrInvalidAmount, err)

	_, err = svc.Renew(context.Background(), 1, -5)
	assert.Equal(t, domainErrors.ErrInvalidAmount, err)
}

func TestRenewUnknownMember(t *testing.T) {
	svc := NewService(newFakeAccountRepo())

	_, err := svc.Renew(context.Background(), 42, 2)
	assert.Equal(t, domainErrors.ErrMemberNotFound, err)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.Create(&models.Account{Username: "chantaiman", Role: models.RoleMember, IsActive: true})
	svc := NewService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.False(t, repo.accounts[1].IsActive)

	assert.Equal(t, domainErrors.ErrMemberNotFound, svc.Deactivate(context.Background(), 42))
}
