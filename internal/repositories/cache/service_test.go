package cache

import (
	"encoding/json"
	"testing"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The password hash must survive the cache round-trip even though the API
// serialization strips it, or logins fail on every cache hit.
func TestAccountCacheRoundTripKeepsPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("passw0rd1"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.Account{
		Username: "chantaiman",
		Password: string(hash),
		Name:     "Chan Tai Man",
		Role:     models.RoleMember,
		Quota:    5,
		IsActive: true,
	}

	data, err := encodeAccount(account)
	require.NoError(t, err)

	cached, err := decodeAccount(data)
	require.NoError(t, err)

	assert.Equal(t, string(hash), cached.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cached.Password), []byte("passw0rd1")))

	assert.Equal(t, account.Username, cached.Username)
	assert.Equal(t, account.Role, cached.Role)
	assert.Equal(t, account.Quota, cached.Quota)
	assert.True(t, cached.IsActive)
}

func TestAccountAPISerializationOmitsPassword(t *testing.T) {
	account := models.Account{Username: "chantaiman", Password: "bcrypt-hash"}

	data, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bcrypt-hash")
}

func TestDecodeAccountRejectsGarbage(t *testing.T) {
	_, err := decodeAccount([]byte("not json"))
	assert.Error(t, err)
}
