package availability

import (
	"context"
	"errors"
	"testing"

	"slotline/models"
)

type fakeRepo struct {
	byDate map[string][]models.ParticipantBusySlots
}

func (f *fakeRepo) GetByDate(_ context.Context, date string) ([]models.ParticipantBusySlots, error) {
	return f.byDate[date], nil
}

func (f *fakeRepo) ReplaceForDate(_ context.Context, date string, participants []models.ParticipantBusySlots) error {
	f.byDate[date] = participants
	return nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }

func (f *fakeRepo) DeleteBefore(_ context.Context, date string) (int64, error) {
	var n int64
	for d, participants := range f.byDate {
		if d < date {
			n += int64(len(participants))
			delete(f.byDate, d)
		}
	}
	return n, nil
}

func participant(email string, slots ...models.Interval) models.ParticipantBusySlots {
	return models.ParticipantBusySlots{
		Participant: models.Participant{Name: email, Email: email},
		BusySlots:   slots,
	}
}

func TestReplaceAndGet(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &fakeRepo{byDate: map[string][]models.ParticipantBusySlots{}}}
	ctx := context.Background()

	got, err := svc.Get(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Get(empty) = %v, want empty non-nil", got)
	}

	in := []models.ParticipantBusySlots{
		participant("b@example.com", models.Interval{Start: 600, End: 660}),
		participant("a@example.com"),
	}
	if err := svc.Replace(ctx, "2024-03-01", in); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, _ = svc.Get(ctx, "2024-03-01")
	if len(got) != 2 || got[0].Participant.Email != "b@example.com" {
		t.Errorf("Get() = %+v, want insertion order kept", got)
	}
}

func TestReplaceValidation(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &fakeRepo{byDate: map[string][]models.ParticipantBusySlots{}}}
	tests := []struct {
		name         string
		date         string
		participants []models.ParticipantBusySlots
	}{
		{"bad date", "2024-13-01", nil},
		{"missing email", "2024-03-01", []models.ParticipantBusySlots{participant("")}},
		{"duplicate", "2024-03-01", []models.ParticipantBusySlots{participant("a@example.com"), participant("A@example.com")}},
		{"out of range", "2024-03-01", []models.ParticipantBusySlots{participant("a@example.com", models.Interval{Start: 600, End: 2000})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Replace(context.Background(), tt.date, tt.participants)
			if !errors.Is(err, ErrInvalidAvailability) {
				t.Errorf("Replace() error = %v, want ErrInvalidAvailability", err)
			}
		})
	}
}

func TestPruneBefore(t *testing.T) {
	repo := &fakeRepo{byDate: map[string][]models.ParticipantBusySlots{
		"2024-02-28": {participant("a@example.com")},
		"2024-02-29": {participant("a@example.com"), participant("b@example.com")},
		"2024-03-01": {participant("a@example.com")},
	}}
	svc := &DefaultAvailabilityService{Repo: repo}

	n, err := svc.PruneBefore(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("PruneBefore() error = %v", err)
	}
	if n != 3 || len(repo.byDate) != 1 {
		t.Errorf("PruneBefore() deleted %d, %d dates left; want 3 and 1", n, len(repo.byDate))
	}
	if _, err := svc.PruneBefore(context.Background(), "03/01/2024"); !errors.Is(err, ErrInvalidAvailability) {
		t.Errorf("PruneBefore(bad date) error = %v", err)
	}
}
