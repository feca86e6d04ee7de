// Package preferences resolves the timezone a user's timeline is displayed in.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	preferencesRepo "slotline/database/repository/preferences"
	"slotline/models"

	"go.uber.org/zap"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// TimezoneService loads and stores timezone preferences. Nothing is persisted
// implicitly: callers Save or Revert at the points their flow defines.
type TimezoneService interface {
	Load(ctx context.Context, userID string) (models.TimezonePreference, error)
	Save(ctx context.Context, userID, timezone string) (models.TimezonePreference, error)
	Revert(ctx context.Context, userID string) (models.TimezonePreference, error)
}

type DefaultTimezoneService struct {
	Repo preferencesRepo.PreferenceRepository
	// LocalTimezone is used when a user has no stored preference.
	LocalTimezone string
	Logger        *zap.Logger
}

func NewTimezoneService(repo preferencesRepo.PreferenceRepository, localTimezone string, logger *zap.Logger) *DefaultTimezoneService {
	if localTimezone == "" {
		localTimezone = "UTC"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTimezoneService{Repo: repo, LocalTimezone: localTimezone, Logger: logger}
}

func (s *DefaultTimezoneService) local(userID string) models.TimezonePreference {
	return models.TimezonePreference{UserID: userID, Timezone: s.LocalTimezone}
}

func (s *DefaultTimezoneService) Load(ctx context.Context, userID string) (models.TimezonePreference, error) {
	if strings.TrimSpace(userID) == "" {
		return models.TimezonePreference{}, errors.New("user id is required")
	}
	tz, ok, err := s.Repo.GetTimezone(ctx, userID)
	if err != nil {
		return models.TimezonePreference{}, fmt.Errorf("failed to load timezone preference: %w", err)
	}
	if !ok {
		return s.local(userID), nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		// a zone removed from tzdata since it was stored
		s.Logger.Warn("stored timezone no longer resolves, using local", zap.String("userID", userID), zap.String("timezone", tz))
		return s.local(userID), nil
	}
	return models.TimezonePreference{UserID: userID, Timezone: tz, Custom: true}, nil
}

func (s *DefaultTimezoneService) Save(ctx context.Context, userID, timezone string) (models.TimezonePreference, error) {
	if strings.TrimSpace(userID) == "" {
		return models.TimezonePreference{}, errors.New("user id is required")
	}
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return models.TimezonePreference{}, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return models.TimezonePreference{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	if err := s.Repo.SetTimezone(ctx, userID, timezone); err != nil {
		return models.TimezonePreference{}, fmt.Errorf("failed to save timezone preference: %w", err)
	}
	s.Logger.Info("timezone preference saved", zap.String("userID", userID), zap.String("timezone", timezone))
	return models.TimezonePreference{UserID: userID, Timezone: timezone, Custom: true}, nil
}

// Revert drops the stored preference so the local timezone applies again.
func (s *DefaultTimezoneService) Revert(ctx context.Context, userID string) (models.TimezonePreference, error) {
	if strings.TrimSpace(userID) == "" {
		return models.TimezonePreference{}, errors.New("user id is required")
	}
	if err := s.Repo.DeleteTimezone(ctx, userID); err != nil {
		return models.TimezonePreference{}, fmt.Errorf("failed to revert timezone preference: %w", err)
	}
	s.Logger.Info("timezone preference reverted", zap.String("userID", userID))
	return s.local(userID), nil
}
