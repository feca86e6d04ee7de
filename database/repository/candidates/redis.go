// File: database/repository/candidates/redis.go
package candidatesRepo

import (
	"context"
	"fmt"
	"time"

	"slotline/models"
	"slotline/utils"

	"github.com/go-redis/redis/v8"
)

// redisCandidateRepo keeps one sorted set per timeline day; the score is the
// start time in minutes so ZRANGE returns chronological order.
type redisCandidateRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCandidateRepo constructs a Redis backed CandidateRepository.
func NewRedisCandidateRepo(client *redis.Client, ttl time.Duration) CandidateRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisCandidateRepo{client: client, ttl: ttl}
}

func (r *redisCandidateRepo) key(timelineID, date string) string {
	return candidateKey(utils.CandidateCachePrefix, timelineID, date)
}

func (r *redisCandidateRepo) List(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error) {
	members, err := r.client.ZRange(ctx, r.key(timelineID, date), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	out, err := models.ParseTimesOfDay(members)
	if err != nil {
		return nil, fmt.Errorf("corrupt candidate set %s: %w", r.key(timelineID, date), err)
	}
	return out, nil
}

func (r *redisCandidateRepo) Add(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error) {
	key := r.key(timelineID, date)
	var added *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.ZAddNX(ctx, key, member(t))
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("add candidate: %w", err)
	}
	return added.Val() == 1, nil
}

func (r *redisCandidateRepo) Remove(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error) {
	key := r.key(timelineID, date)
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.ZRem(ctx, key, t.String())
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("remove candidate: %w", err)
	}
	return removed.Val() == 1, nil
}

func (r *redisCandidateRepo) Replace(ctx context.Context, timelineID, date string, oldTime, newTime models.TimeOfDay) (bool, error) {
	key := r.key(timelineID, date)
	replaced := false

	txf := func(tx *redis.Tx) error {
		if _, err := tx.ZScore(ctx, key, oldTime.String()).Result(); err != nil {
			if err == redis.Nil {
				return nil
			}
			return err
		}
		if oldTime != newTime {
			_, err := tx.ZScore(ctx, key, newTime.String()).Result()
			if err == nil {
				return nil
			}
			if err != redis.Nil {
				return err
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRem(ctx, key, oldTime.String())
			pipe.ZAdd(ctx, key, member(newTime))
			pipe.Expire(ctx, key, r.ttl)
			return nil
		})
		if err == nil {
			replaced = true
		}
		return err
	}

	// optimistic lock on the day's set; retry a few times on concurrent edits
	for attempt := 0; attempt < 3; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("replace candidate: %w", err)
		}
		return replaced, nil
	}
	return false, fmt.Errorf("replace candidate: %w", redis.TxFailedErr)
}

func member(t models.TimeOfDay) *redis.Z {
	return &redis.Z{Score: float64(t), Member: t.String()}
}
