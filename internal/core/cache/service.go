package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"reciplease/internal/infrastructure/config"
	"reciplease/internal/pkg/common"
)

// Service Redis 快取服務
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建 Redis 快取服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled || cfg.RedisAddr == "" {
		return nil, common.ErrCacheDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 查詢快取的解析結果
func (s *Service) Get(ctx context.Context, rawLine string) (*common.IngredientRecord, error) {
	data, err := s.client.Get(ctx, generateKey(rawLine)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", rawLine)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var record common.IngredientRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached record: %w", err)
	}

	common.LogCacheHit("redis", rawLine)
	return &record, nil
}

// Set 寫入解析結果
func (s *Service) Set(ctx context.Context, rawLine string, record *common.IngredientRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := s.client.Set(ctx, generateKey(rawLine), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close 關閉 Redis 連接
func (s *Service) Close() error {
	return s.client.Close()
}
