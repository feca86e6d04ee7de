package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	availabilityRepo "slotline/database/repository/availability"
	"slotline/models"

	"go.uber.org/zap"
)

var ErrInvalidAvailability = errors.New("invalid availability")

// AvailabilityService exposes the busy slots participants reported per date.
type AvailabilityService interface {
	Get(ctx context.Context, date string) ([]models.ParticipantBusySlots, error)
	Replace(ctx context.Context, date string, participants []models.ParticipantBusySlots) error
	// PruneBefore drops every date earlier than date.
	PruneBefore(ctx context.Context, date string) (int64, error)
}

type DefaultAvailabilityService struct {
	Repo   availabilityRepo.AvailabilityRepository
	Logger *zap.Logger
}

func (s *DefaultAvailabilityService) Get(ctx context.Context, date string) ([]models.ParticipantBusySlots, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidAvailability, date)
	}
	participants, err := s.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if participants == nil {
		participants = []models.ParticipantBusySlots{}
	}
	return participants, nil
}

// Replace overwrites every participant's busy slots for date. Participant
// order is kept; it is the row order of the timeline.
func (s *DefaultAvailabilityService) Replace(ctx context.Context, date string, participants []models.ParticipantBusySlots) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidAvailability, date)
	}
	if err := validateParticipants(participants); err != nil {
		return err
	}
	if err := s.Repo.ReplaceForDate(ctx, date, participants); err != nil {
		return fmt.Errorf("failed to store availability: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("availability replaced", zap.String("date", date), zap.Int("participants", len(participants)))
	}
	return nil
}

func validateParticipants(participants []models.ParticipantBusySlots) error {
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		email := strings.ToLower(strings.TrimSpace(p.Participant.Email))
		if email == "" {
			return fmt.Errorf("%w: participant %d has no email", ErrInvalidAvailability, i)
		}
		if seen[email] {
			return fmt.Errorf("%w: duplicate participant %s", ErrInvalidAvailability, p.Participant.Email)
		}
		seen[email] = true
		for _, iv := range p.BusySlots {
			if !iv.Start.Valid() || !iv.End.Valid() {
				return fmt.Errorf("%w: busy slot of %s out of range", ErrInvalidAvailability, p.Participant.Email)
			}
		}
	}
	return nil
}

func (s *DefaultAvailabilityService) PruneBefore(ctx context.Context, date string) (int64, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidAvailability, date)
	}
	n, err := s.Repo.DeleteBefore(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to prune availability: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("availability pruned", zap.String("before", date), zap.Int64("deleted", n))
	}
	return n, nil
}
