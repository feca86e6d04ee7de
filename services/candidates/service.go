package candidates

import (
	"context"
	"fmt"
	"time"

	"slotline/models"
	"slotline/services/timeline"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func (s *DefaultCandidateService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// NewTimelineID returns a fresh identifier for a set of timeline days.
func (s *DefaultCandidateService) NewTimelineID() string {
	return uuid.New().String()
}

func validateDay(timelineID, date string) (time.Time, error) {
	if _, err := uuid.Parse(timelineID); err != nil {
		return time.Time{}, newValidationError("timelineId", "must be a UUID, got %q", timelineID)
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, newValidationError("date", "must be YYYY-MM-DD, got %q", date)
	}
	return day, nil
}

func validateTime(field string, t models.TimeOfDay) error {
	if !t.Valid() || t == models.EndOfDay {
		return newValidationError(field, "must be between 00:00 and 23:59")
	}
	return nil
}

func (s *DefaultCandidateService) List(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error) {
	if _, err := validateDay(timelineID, date); err != nil {
		return nil, err
	}
	return s.list(ctx, timelineID, date)
}

func (s *DefaultCandidateService) list(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error) {
	slots, err := s.Repo.List(ctx, timelineID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	if slots == nil {
		slots = []models.TimeOfDay{}
	}
	return slots, nil
}

// Add inserts a candidate start time; a time already present is rejected.
func (s *DefaultCandidateService) Add(ctx context.Context, timelineID, date string, t models.TimeOfDay) ([]models.TimeOfDay, error) {
	if _, err := validateDay(timelineID, date); err != nil {
		return nil, err
	}
	if err := validateTime("time", t); err != nil {
		return nil, err
	}

	added, err := s.Repo.Add(ctx, timelineID, date, t)
	if err != nil {
		return nil, fmt.Errorf("failed to add candidate: %w", err)
	}
	if !added {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotTaken, t, date)
	}
	s.logger().Debug("candidate added", zap.String("timelineID", timelineID), zap.String("date", date), zap.Stringer("time", t))
	return s.list(ctx, timelineID, date)
}

func (s *DefaultCandidateService) Remove(ctx context.Context, timelineID, date string, t models.TimeOfDay) ([]models.TimeOfDay, error) {
	if _, err := validateDay(timelineID, date); err != nil {
		return nil, err
	}

	removed, err := s.Repo.Remove(ctx, timelineID, date, t)
	if err != nil {
		return nil, fmt.Errorf("failed to remove candidate: %w", err)
	}
	if !removed {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotNotFound, t, date)
	}
	s.logger().Debug("candidate removed", zap.String("timelineID", timelineID), zap.String("date", date), zap.Stringer("time", t))
	return s.list(ctx, timelineID, date)
}

// Update moves a candidate to a new start time.
func (s *DefaultCandidateService) Update(ctx context.Context, timelineID, date string, oldTime, newTime models.TimeOfDay) ([]models.TimeOfDay, error) {
	if _, err := validateDay(timelineID, date); err != nil {
		return nil, err
	}
	if err := validateTime("time", newTime); err != nil {
		return nil, err
	}

	replaced, err := s.Repo.Replace(ctx, timelineID, date, oldTime, newTime)
	if err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	if !replaced {
		taken, err := s.IsTaken(ctx, timelineID, date, oldTime)
		if err != nil {
			return nil, err
		}
		if !taken {
			return nil, fmt.Errorf("%w: %s on %s", ErrSlotNotFound, oldTime, date)
		}
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotTaken, newTime, date)
	}
	return s.list(ctx, timelineID, date)
}

// CopyFromPreviousDay adds every candidate of the day before date. Times the
// day already has are skipped.
func (s *DefaultCandidateService) CopyFromPreviousDay(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error) {
	day, err := validateDay(timelineID, date)
	if err != nil {
		return nil, err
	}
	previous := day.AddDate(0, 0, -1).Format(dateLayout)

	past, err := s.list(ctx, timelineID, previous)
	if err != nil {
		return nil, err
	}
	if len(past) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPreviousSlots, previous)
	}

	copied := 0
	for _, t := range past {
		added, err := s.Repo.Add(ctx, timelineID, date, t)
		if err != nil {
			return nil, fmt.Errorf("failed to copy candidate %s: %w", t, err)
		}
		if added {
			copied++
		}
	}
	s.logger().Info("copied candidates from previous day",
		zap.String("timelineID", timelineID), zap.String("from", previous), zap.String("to", date), zap.Int("copied", copied))
	return s.list(ctx, timelineID, date)
}

func (s *DefaultCandidateService) IsTaken(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error) {
	slots, err := s.List(ctx, timelineID, date)
	if err != nil {
		return false, err
	}
	for _, c := range slots {
		if c == t {
			return true, nil
		}
	}
	return false, nil
}

// NextStartTime is the suggested start for the next slot of the day.
func (s *DefaultCandidateService) NextStartTime(ctx context.Context, timelineID, date string, duration int) (models.TimeOfDay, error) {
	slots, err := s.List(ctx, timelineID, date)
	if err != nil {
		return 0, err
	}
	if duration <= 0 {
		duration = s.Defaults.Duration
	}
	return timeline.NextStartTime(slots, duration), nil
}
