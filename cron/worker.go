// Package cron runs background maintenance through an asynq queue.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotline/config"
	"slotline/services/availability"
	"slotline/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAvailabilityPrune = "availability:prune"

// PruneSchedule fires the prune task once a day.
const PruneSchedule = "@daily"

// PrunePayload says how many days of availability to keep.
type PrunePayload struct {
	RetentionDays int `json:"retentionDays"`
}

func NewPruneTask(retentionDays int) (*asynq.Task, error) {
	payload, err := json.Marshal(PrunePayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAvailabilityPrune, payload, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitPruneWorker starts the worker and the daily scheduler in the
// background. The returned func stops both.
func InitPruneWorker(svc availability.AvailabilityService, retentionDays int) (func(), error) {
	logger := utils.GetLogger().Named("cron")

	task, err := NewPruneTask(retentionDays)
	if err != nil {
		return nil, err
	}

	srv := asynq.NewServer(redisOpts(), asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAvailabilityPrune, handlePruneTask(svc, time.Now))

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Logger: logger.Sugar()})
	if _, err := scheduler.Register(PruneSchedule, task); err != nil {
		return nil, fmt.Errorf("register prune task: %w", err)
	}

	stop, err := startPrune(scheduler, srv, mux, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("availability prune scheduled", zap.String("schedule", PruneSchedule), zap.Int("retentionDays", retentionDays))
	return stop, nil
}

type pruneScheduler interface {
	Start() error
	Shutdown()
}

type pruneServer interface {
	Start(asynq.Handler) error
	Shutdown()
}

// startPrune starts the scheduler first; the worker only runs once something
// will enqueue for it, so a failed scheduler leaves nothing behind.
func startPrune(scheduler pruneScheduler, srv pruneServer, handler asynq.Handler, logger *zap.Logger) (func(), error) {
	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("start prune scheduler: %w", err)
	}
	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(handler)
			if err == nil {
				return
			}
			logger.Warn("prune worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("prune worker gave up; availability will not be pruned")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}

func handlePruneTask(svc availability.AvailabilityService, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p PrunePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid prune payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.RetentionDays <= 0 {
			return fmt.Errorf("retention must be positive, got %d: %w", p.RetentionDays, asynq.SkipRetry)
		}

		cutoff := now().AddDate(0, 0, -p.RetentionDays).Format("2006-01-02")
		_, err := svc.PruneBefore(ctx, cutoff)
		return err
	}
}
