package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
)

// Cache key patterns:
// - company:{company_id}:profile - 5m TTL, directory display data

// ProfileCacheConfig contains configuration for the directory cache
type ProfileCacheConfig struct {
	ProfileTTL time.Duration // TTL for company profile cache (default 5m)
}

// DefaultProfileCacheConfig returns sensible defaults
func DefaultProfileCacheConfig() ProfileCacheConfig {
	return ProfileCacheConfig{ProfileTTL: 5 * time.Minute}
}

// ProfileCache caches company directory profiles in Redis
type ProfileCache struct {
	client *goredis.Client
	config ProfileCacheConfig
}

func NewProfileCache(client *goredis.Client, config ProfileCacheConfig) *ProfileCache {
	return &ProfileCache{client: client, config: config}
}

// GetProfile retrieves a cached profile; nil on a cache miss.
func (c *ProfileCache) GetProfile(ctx context.Context, companyID uuid.UUID) (*company.Profile, error) {
	key := profileKey(companyID)
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile company.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		// Corrupt cache entry; drop it rather than serve it.
		c.client.Del(ctx, key)
		return nil, nil
	}
	return &profile, nil
}

// SetProfile stores a profile with the configured TTL.
func (c *ProfileCache) SetProfile(ctx context.Context, profile company.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.ID), data, c.config.ProfileTTL).Err()
}

// InvalidateProfile drops a cached profile after a directory update.
func (c *ProfileCache) InvalidateProfile(ctx context.Context, companyID uuid.UUID) error {
	return c.client.Del(ctx, profileKey(companyID)).Err()
}

func profileKey(companyID uuid.UUID) string {
	return fmt.Sprintf("company:%s:profile", companyID.String())
}
