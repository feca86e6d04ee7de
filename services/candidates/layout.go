package candidates

import (
	"context"
	"fmt"
	"slices"

	"slotline/models"
	"slotline/services/timeline"

	"go.uber.org/zap"
)

// Layout lays out a stored timeline day against the availability known for
// that date.
func (s *DefaultCandidateService) Layout(ctx context.Context, timelineID, date string, opts LayoutOptions) (models.TimelineLayout, error) {
	if _, err := validateDay(timelineID, date); err != nil {
		return models.TimelineLayout{}, err
	}

	slots, err := s.list(ctx, timelineID, date)
	if err != nil {
		return models.TimelineLayout{}, err
	}

	var availability []models.ParticipantBusySlots
	if s.Availability != nil {
		availability, err = s.Availability.GetByDate(ctx, date)
		if err != nil {
			return models.TimelineLayout{}, fmt.Errorf("failed to fetch availability: %w", err)
		}
	}
	availability = filterParticipants(availability, opts.Participants)

	in := s.layoutInput(opts)
	in.TimelineID = timelineID
	in.Date = date
	in.Candidates = slots
	in.Availability = availability

	layout, err := timeline.BuildLayout(in)
	if err != nil {
		return models.TimelineLayout{}, newValidationError("layout", "%v", err)
	}
	s.logger().Debug("timeline laid out",
		zap.String("timelineID", timelineID), zap.String("date", date),
		zap.Int("candidates", len(slots)), zap.Int("rows", len(layout.Rows)), zap.Any("window", layout.Window))
	return layout, nil
}

// layoutInput merges opts over the configured defaults.
func (s *DefaultCandidateService) layoutInput(opts LayoutOptions) timeline.LayoutInput {
	in := timeline.LayoutInput{
		Window:    s.Defaults.Window,
		FitWindow: !opts.KeepWindow,
		Duration:  s.Defaults.Duration,
		HourStep:  s.Defaults.HourStep,
	}
	if opts.Window != nil {
		in.Window = *opts.Window
	}
	if opts.Duration > 0 {
		in.Duration = opts.Duration
	}
	if opts.HourStep > 0 {
		in.HourStep = opts.HourStep
	}
	return in
}

func filterParticipants(all []models.ParticipantBusySlots, emails []string) []models.ParticipantBusySlots {
	if len(emails) == 0 {
		return all
	}
	out := make([]models.ParticipantBusySlots, 0, len(emails))
	for _, p := range all {
		if slices.Contains(emails, p.Participant.Email) {
			out = append(out, p)
		}
	}
	return out
}
