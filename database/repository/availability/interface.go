// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"slotline/database"
	"slotline/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository stores participants' busy intervals per date.
type AvailabilityRepository interface {
	GetByDate(ctx context.Context, date string) ([]models.ParticipantBusySlots, error)
	ReplaceForDate(ctx context.Context, date string, participants []models.ParticipantBusySlots) error
	// DeleteBefore removes all dates earlier than date and reports how many
	// participant documents went.
	DeleteBefore(ctx context.Context, date string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability"),
	}
}

// availabilityDoc is one participant's busy intervals on one date.
type availabilityDoc struct {
	Date        string             `bson:"date"`
	Position    int                `bson:"position"`
	Participant models.Participant `bson:"participant"`
	Loading     bool               `bson:"loading"`
	BusySlots   []busySlotDoc      `bson:"busySlots"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type busySlotDoc struct {
	StartTime string `bson:"startTime"`
	EndTime   string `bson:"endTime"`
}
