package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotline/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeAvailability struct {
	prunedBefore string
}

func (f *fakeAvailability) Get(context.Context, string) ([]models.ParticipantBusySlots, error) {
	return nil, nil
}

func (f *fakeAvailability) Replace(context.Context, string, []models.ParticipantBusySlots) error {
	return nil
}

func (f *fakeAvailability) PruneBefore(_ context.Context, date string) (int64, error) {
	f.prunedBefore = date
	return 0, nil
}

func TestHandlePruneTask(t *testing.T) {
	svc := &fakeAvailability{}
	now := func() time.Time { return time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC) }
	handler := handlePruneTask(svc, now)

	task, err := NewPruneTask(30)
	if err != nil {
		t.Fatalf("NewPruneTask() error = %v", err)
	}
	if task.Type() != TypeAvailabilityPrune {
		t.Errorf("Type() = %s", task.Type())
	}
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if svc.prunedBefore != "2024-02-09" {
		t.Errorf("pruned before %s, want 2024-02-09", svc.prunedBefore)
	}
}

func TestHandlePruneTaskRejectsBadPayload(t *testing.T) {
	handler := handlePruneTask(&fakeAvailability{}, time.Now)
	for name, payload := range map[string]string{
		"not json":       "{",
		"zero retention": `{"retentionDays":0}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := handler(context.Background(), asynq.NewTask(TypeAvailabilityPrune, []byte(payload)))
			if !errors.Is(err, asynq.SkipRetry) {
				t.Errorf("error = %v, want SkipRetry", err)
			}
		})
	}
}

type fakeScheduler struct {
	startErr error
	stopped  bool
}

func (f *fakeScheduler) Start() error { return f.startErr }
func (f *fakeScheduler) Shutdown()    { f.stopped = true }

type fakeServer struct {
	started chan struct{}
	stopped bool
}

func (f *fakeServer) Start(asynq.Handler) error {
	close(f.started)
	return nil
}

func (f *fakeServer) Shutdown() { f.stopped = true }

func TestStartPrune(t *testing.T) {
	sched := &fakeScheduler{}
	srv := &fakeServer{started: make(chan struct{})}

	stop, err := startPrune(sched, srv, asynq.NewServeMux(), zap.NewNop())
	if err != nil {
		t.Fatalf("startPrune() error = %v", err)
	}
	select {
	case <-srv.started:
	case <-time.After(time.Second):
		t.Fatal("worker never started")
	}
	stop()
	if !sched.stopped || !srv.stopped {
		t.Errorf("stop: scheduler %v server %v, want both stopped", sched.stopped, srv.stopped)
	}
}

func TestStartPruneSchedulerFailure(t *testing.T) {
	sched := &fakeScheduler{startErr: errors.New("redis down")}
	srv := &fakeServer{started: make(chan struct{})}

	if _, err := startPrune(sched, srv, asynq.NewServeMux(), zap.NewNop()); err == nil {
		t.Fatal("startPrune() error = nil, want scheduler error")
	}
	select {
	case <-srv.started:
		t.Error("worker started although the scheduler failed")
	case <-time.After(50 * time.Millisecond):
	}
}
