package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceTokenStore holds server-side token state: the current refresh
// token per administrator and the revoked access-token IDs.
type InterfaceTokenStore interface {
	StoreRefreshToken(adminID uint, token string, ttl time.Duration) error
	GetRefreshToken(adminID uint) (string, error)
	DeleteRefreshToken(adminID uint) error
	RevokeAccessToken(jti string, ttl time.Duration) error
	IsAccessTokenRevoked(jti string) (bool, error)
}

// RedisTokenStore keeps token state in Redis.
type RedisTokenStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisTokenStore creates a Redis-backed token store.
func NewRedisTokenStore(client *redis.Client) InterfaceTokenStore {
	return &RedisTokenStore{
		Client: client,
		Ctx:    context.Background(),
	}
}

func refreshKey(adminID uint) string {
	return fmt.Sprintf("refresh_token:%d", adminID)
}

func revokedKey(jti string) string {
	return "revoked_token:" + jti
}

func (s *RedisTokenStore) StoreRefreshToken(adminID uint, token string, ttl time.Duration) error {
	return s.Client.Set(s.Ctx, refreshKey(adminID), token, ttl).Err()
}

func (s *RedisTokenStore) GetRefreshToken(adminID uint) (string, error) {
	val, err := s.Client.Get(s.Ctx, refreshKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisTokenStore) DeleteRefreshToken(adminID uint) error {
	return s.Client.Del(s.Ctx, refreshKey(adminID)).Err()
}

func (s *RedisTokenStore) RevokeAccessToken(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.Client.Set(s.Ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *RedisTokenStore) IsAccessTokenRevoked(jti string) (bool, error) {
	_, err := s.Client.Get(s.Ctx, revokedKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryTokenStore is the process-local fallback used when Redis is not
// configured and in tests. Revocation does not survive a restart.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	refresh map[uint]memoryEntry
	revoked map[string]time.Time
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// NewMemoryTokenStore creates an in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	s := &MemoryTokenStore{
		refresh: make(map[uint]memoryEntry),
		revoked: make(map[string]time.Time),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryTokenStore) StoreRefreshToken(adminID uint, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[adminID] = memoryEntry{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) GetRefreshToken(adminID uint) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.refresh[adminID]
	if !ok || entry.expiresAt.Before(time.Now()) {
		return "", nil
	}
	return entry.token, nil
}

func (s *MemoryTokenStore) DeleteRefreshToken(adminID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, adminID)
	return nil
}

func (s *MemoryTokenStore) RevokeAccessToken(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsAccessTokenRevoked(jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiresAt, ok := s.revoked[jti]
	return ok && expiresAt.After(time.Now()), nil
}

func (s *MemoryTokenStore) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for jti, expiresAt := range s.revoked {
			if expiresAt.Before(now) {
				delete(s.revoked, jti)
			}
		}
		for adminID, entry := range s.refresh {
			if entry.expiresAt.Before(now) {
				delete(s.refresh, adminID)
			}
		}
		s.mu.Unlock()
	}
}
