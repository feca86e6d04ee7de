// File: database/repository/candidates/interface.go
package candidatesRepo

import (
	"context"
	"time"

	"slotline/models"
)

// CandidateRepository stores the candidate start times of each timeline day.
// Start times are unique within a day and always returned in chronological order.
type CandidateRepository interface {
	List(ctx context.Context, timelineID, date string) ([]models.TimeOfDay, error)
	// Add reports false when the time is already present.
	Add(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error)
	// Remove reports false when the time was not present.
	Remove(ctx context.Context, timelineID, date string, t models.TimeOfDay) (bool, error)
	// Replace swaps oldTime for newTime atomically. It reports false, and
	// changes nothing, when oldTime is absent or newTime is taken.
	Replace(ctx context.Context, timelineID, date string, oldTime, newTime models.TimeOfDay) (bool, error)
}

func candidateKey(prefix, timelineID, date string) string {
	return prefix + timelineID + ":" + date
}

const defaultTTL = 24 * time.Hour
