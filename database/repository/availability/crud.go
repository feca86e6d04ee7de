// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAvailabilityRepo) GetByDate(ctx context.Context, date string) ([]models.ParticipantBusySlots, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []availabilityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.ParticipantBusySlots, 0, len(docs))
	for _, doc := range docs {
		p, err := fromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("availability of %s on %s: %w", doc.Participant.Email, date, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ReplaceForDate drops the stored availability of date and writes participants
// in the given order, inside a transaction when the deployment supports one.
func (r *mongoAvailabilityRepo) ReplaceForDate(ctx context.Context, date string, participants []models.ParticipantBusySlots) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, len(participants))
	for i, p := range participants {
		docs[i] = toDoc(date, i, p, now)
	}

	write := func(sc context.Context) error {
		if _, err := r.coll.DeleteMany(sc, bson.M{"date": date}); err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := r.coll.InsertMany(sc, docs, options.InsertMany().SetOrdered(true))
		return err
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return write(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, write(sc)
	})
	if isTransactionUnsupported(err) {
		// standalone servers reject transactions
		return write(ctx)
	}
	return err
}

func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}

func toDoc(date string, position int, p models.ParticipantBusySlots, now time.Time) availabilityDoc {
	slots := make([]busySlotDoc, len(p.BusySlots))
	for i, iv := range p.BusySlots {
		slots[i] = busySlotDoc{StartTime: iv.Start.String(), EndTime: iv.End.String()}
	}
	return availabilityDoc{
		Date:        date,
		Position:    position,
		Participant: p.Participant,
		Loading:     p.BusySlotsLoading,
		BusySlots:   slots,
		UpdatedAt:   now,
	}
}

func fromDoc(doc availabilityDoc) (models.ParticipantBusySlots, error) {
	slots := make([]models.Interval, 0, len(doc.BusySlots))
	for _, s := range doc.BusySlots {
		start, err := models.ParseTimeOfDay(s.StartTime)
		if err != nil {
			return models.ParticipantBusySlots{}, err
		}
		end, err := models.ParseTimeOfDay(s.EndTime)
		if err != nil {
			return models.ParticipantBusySlots{}, err
		}
		slots = append(slots, models.Interval{Start: start, End: end})
	}
	return models.ParticipantBusySlots{
		Participant:      doc.Participant,
		BusySlotsLoading: doc.Loading,
		BusySlots:        slots,
	}, nil
}

// DeleteBefore drops every date earlier than date. Dates are YYYY-MM-DD, so
// string order is chronological.
func (r *mongoAvailabilityRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
