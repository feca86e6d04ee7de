package candidates

import (
	"context"

	availabilityRepo "slotline/database/repository/availability"
	candidatesRepo "slotline/database/repository/candidates"
	"slotline/models"

	"go.uber.org/zap"
)

// CandidateService manages the candidate slots of a timeline and lays them out.
type CandidateService interface {
	NewTimelineID() string
	List(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error)
	Add(ctx context.Context, timelineID, date string, t models.TimeOfDay) ([]models.TimeOfDay, error)
	Remove(ctx context.Context, timelineID, date string, t models.TimeOfDay) ([]models.TimeOfDay, error)
	Update(ctx context.Context, timelineID, date string, oldTime, newTime models.TimeOfDay) ([]models.TimeOfDay, error)
	CopyFromPreviousDay(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error)
	IsTaken(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error)
	NextStartTime(ctx context.Context, timelineID, date string, duration int) (models.TimeOfDay, error)
	Layout(ctx context.Context, timelineID, date string, opts LayoutOptions) (models.TimelineLayout, error)
}

// Defaults are the configured timeline settings used when a request omits them.
type Defaults struct {
	Window   models.HourWindow
	HourStep int
	Duration int
}

// LayoutOptions override Defaults for a single layout.
type LayoutOptions struct {
	Duration int
	Window   *models.HourWindow
	// KeepWindow disables fitting the window around the candidates.
	KeepWindow bool
	HourStep   int
	// Participants restricts busy rows to these emails when non-empty.
	Participants []string
}

// DefaultCandidateService implements CandidateService.
type DefaultCandidateService struct {
	Repo         candidatesRepo.CandidateRepository
	Availability availabilityRepo.AvailabilityRepository
	Defaults     Defaults
	Logger       *zap.Logger
}
