package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// accountEnvelope carries the password hash alongside the account.
// Account.Password is tagged json:"-" so API responses never emit it, which
// would also blank the hash on the cache round-trip and reject valid logins
// on every cache hit. The envelope keeps the hash cache-side only.
type accountEnvelope struct {
	Account      models.Account `json:"account"`
	PasswordHash string         `json:"passwordHash"`
}

func encodeAccount(account *models.Account) ([]byte, error) {
	return json.Marshal(accountEnvelope{
		Account:      *account,
		PasswordHash: account.Password,
	})
}

func decodeAccount(data []byte) (*models.Account, error) {
	var env accountEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached account: %w", err)
	}
	account := env.Account
	account.Password = env.PasswordHash
	return &account, nil
}

// Account caching
func (s *CacheService) CacheAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("cannot cache nil account")
	}

	data, err := encodeAccount(account)
	if err != nil {
		return fmt.Errorf("failed to marshal cached account: %w", err)
	}

	keys := []string{
		s.GenerateKey("account", "id", account.ID),
		s.GenerateKey("account", "username", account.Username),
	}

	for _, key := range keys {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetAccount(ctx context.Context, key string) (*models.Account, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("account not found in cache")
		}
		return nil, fmt.Errorf("failed to get cache value: %w", err)
	}
	return decodeAccount(data)
}

// InvalidateAccount drops every cached view of an account. Quota changes
// go through here so stale balances are never served.
func (s *CacheService) InvalidateAccount(ctx context.Context, accountID uint) error {
	account, err := s.GetAccount(ctx, s.GenerateKey("account", "id", accountID))
	if err != nil {
		return s.Delete(ctx, s.GenerateKey("account", "id", accountID))
	}

	return s.Delete(ctx,
		s.GenerateKey("account", "id", accountID),
		s.GenerateKey("account", "username", account.Username),
	)
}

// QR registry caching
func (s *CacheService) CacheQRCode(ctx context.Context, qr *models.QRCode) error {
	if qr == nil {
		return errors.New("cannot cache nil QR code")
	}
	return s.Set(ctx, s.GenerateKey("qrcode", "number", qr.QRCodeNumber), qr)
}

func (s *CacheService) GetQRCode(ctx context.Context, number string) (*models.QRCode, error) {
	var qr models.QRCode
	found, err := s.Get(ctx, s.GenerateKey("qrcode", "number", number), &qr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("QR code not found in cache")
	}
	return &qr, nil
}

func (s *CacheService) InvalidateQRCode(ctx context.Context, number string) error {
	return s.Delete(ctx, s.GenerateKey("qrcode", "number", number))
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
