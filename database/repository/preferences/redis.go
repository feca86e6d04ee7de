// File: database/repository/preferences/redis.go
package preferencesRepo

import (
	"context"

	"slotline/utils"

	"github.com/go-redis/redis/v8"
)

// PreferenceRepository persists per-user display preferences.
type PreferenceRepository interface {
	// GetTimezone reports false when the user has no stored timezone.
	GetTimezone(ctx context.Context, userID string) (string, bool, error)
	SetTimezone(ctx context.Context, userID, timezone string) error
	DeleteTimezone(ctx context.Context, userID string) error
}

type redisPreferenceRepo struct {
	client *redis.Client
}

// NewRedisPreferenceRepo constructs a Redis backed PreferenceRepository.
// Preferences do not expire.
func NewRedisPreferenceRepo(client *redis.Client) PreferenceRepository {
	return &redisPreferenceRepo{client: client}
}

func timezoneKey(userID string) string {
	return utils.TimezonePrefPrefix + userID
}

func (r *redisPreferenceRepo) GetTimezone(ctx context.Context, userID string) (string, bool, error) {
	tz, err := r.client.Get(ctx, timezoneKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tz, true, nil
}

func (r *redisPreferenceRepo) SetTimezone(ctx context.Context, userID, timezone string) error {
	return r.client.Set(ctx, timezoneKey(userID), timezone, 0).Err()
}

func (r *redisPreferenceRepo) DeleteTimezone(ctx context.Context, userID string) error {
	return r.client.Del(ctx, timezoneKey(userID)).Err()
}
