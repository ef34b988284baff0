package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"usercenter/internal/models"
	"usercenter/internal/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// CacheService is the Redis-backed read cache for balances and withdrawal
// history.
type CacheService struct {
	client     *redis.Client
	ttl        time.Duration
	historyTTL time.Duration
}

var _ repositories.CacheRepository = (*CacheService)(nil)

func NewCacheService(client *redis.Client, defaultTTL, historyTTL time.Duration) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = repositories.DefaultExpiration
	}
	if historyTTL <= 0 {
		historyTTL = repositories.DefaultHistoryExpiration
	}
	return &CacheService{
		client:     client,
		ttl:        defaultTTL,
		historyTTL: historyTTL,
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
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Generation returns the user's cache generation, zero until the first
// invalidation.
func (s *CacheService) Generation(ctx context.Context, userID uint) (int64, error) {
	generation, err := s.client.Get(ctx, generationKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return generation, nil
}

// Balance caching
func (s *CacheService) GetBalance(ctx context.Context, userID uint, generation int64) (decimal.Decimal, bool, error) {
	var balance decimal.Decimal
	found, err := s.Get(ctx, balanceKey(userID, generation), &balance)
	if err != nil || !found {
		return decimal.Zero, false, err
	}
	return balance, true, nil
}

func (s *CacheService) SetBalance(ctx context.Context, userID uint, generation int64, balance decimal.Decimal) error {
	return s.Set(ctx, balanceKey(userID, generation), balance)
}

// Withdrawal history caching
func (s *CacheService) GetWithdrawalPage(ctx context.Context, userID uint, generation int64, page, pageSize int) (*models.WithdrawalPage, bool, error) {
	var result models.WithdrawalPage
	found, err := s.Get(ctx, withdrawalPageKey(userID, generation, page, pageSize), &result)
	if err != nil || !found {
		return nil, false, err
	}
	return &result, true, nil
}

func (s *CacheService) SetWithdrawalPage(ctx context.Context, userID uint, generation int64, result *models.WithdrawalPage) error {
	if result == nil {
		return errors.New("cannot cache nil withdrawal page")
	}
	return s.SetWithTTL(ctx, withdrawalPageKey(userID, generation, result.Page, result.PageSize), result, s.historyTTL)
}

// InvalidateUser bumps the generation. Entries of older generations are left
// to expire.
func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	generation, err := s.client.Incr(ctx, generationKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}
	log.Printf("Invalidated cache for user ID %d (generation %d)", userID, generation)
	return nil
}

// Ping checks the Redis connection.
func (s *CacheService) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) GetStats() *redis.PoolStats {
	return s.client.PoolStats()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
