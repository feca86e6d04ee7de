// File: database/repository/candidates/memory.go
package candidatesRepo

import (
	"context"
	"slices"
	"sync"

	"slotline/models"
)

// memoryCandidateRepo is a process-local CandidateRepository used by the
// terminal UI and tests.
type memoryCandidateRepo struct {
	mu   sync.Mutex
	sets map[string][]models.TimeOfDay
}

// NewMemoryCandidateRepo constructs an in-memory CandidateRepository.
func NewMemoryCandidateRepo() CandidateRepository {
	return &memoryCandidateRepo{sets: make(map[string][]models.TimeOfDay)}
}

func (r *memoryCandidateRepo) List(_ context.Context, timelineID, date string) ([]models.TimeOfDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.sets[candidateKey("", timelineID, date)]), nil
}

func (r *memoryCandidateRepo) Add(_ context.Context, timelineID, date string, t models.TimeOfDay) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(candidateKey("", timelineID, date), t), nil
}

func (r *memoryCandidateRepo) Remove(_ context.Context, timelineID, date string, t models.TimeOfDay) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(candidateKey("", timelineID, date), t), nil
}

func (r *memoryCandidateRepo) Replace(_ context.Context, timelineID, date string, oldTime, newTime models.TimeOfDay) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := candidateKey("", timelineID, date)
	set := r.sets[key]
	if !slices.Contains(set, oldTime) {
		return false, nil
	}
	if oldTime != newTime && slices.Contains(set, newTime) {
		return false, nil
	}
	r.removeLocked(key, oldTime)
	r.addLocked(key, newTime)
	return true, nil
}

func (r *memoryCandidateRepo) addLocked(key string, t models.TimeOfDay) bool {
	set := r.sets[key]
	i, found := slices.BinarySearch(set, t)
	if found {
		return false
	}
	r.sets[key] = slices.Insert(set, i, t)
	return true
}

func (r *memoryCandidateRepo) removeLocked(key string, t models.TimeOfDay) bool {
	set := r.sets[key]
	i, found := slices.BinarySearch(set, t)
	if !found {
		return false
	}
	r.sets[key] = slices.Delete(set, i, i+1)
	return true
}
