package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/storage"
)

type fakeRecorder struct {
	runs []storage.Run
}

func (r *fakeRecorder) Submit(run storage.Run) {
	r.runs = append(r.runs, run)
}

func TestStatsSystem_Counters(t *testing.T) {
	w := towerWorld()
	rec := &fakeRecorder{}
	s := NewStatsSystem(w, rec).(*StatsSystem)

	for _, ev := range []event.GameEvent{
		{Type: event.EventBuildingPlaced},
		{Type: event.EventBuildingPlaced},
		{Type: event.EventJointCreated},
		{Type: event.EventJointBroken},
		{Type: event.EventQuakeStarted, Payload: &event.QuakePayload{Count: 4}},
		{Type: event.EventRentCollected, Payload: &event.RentPayload{Amount: 130}},
		{Type: event.EventInhabitantEvicted},
		{Type: event.EventQuakeStopped, Payload: &event.QuakePayload{Count: 4}},
	} {
		s.HandleEvent(ev)
	}

	stats := w.Resources.Stats
	if stats.Buildings != 2 || stats.Joints != 1 || stats.JointsBroken != 1 ||
		stats.Quakes != 4 || stats.RentCollected != 130 || stats.Evictions != 1 {
		t.Errorf("stats = %+v", *stats)
	}
	if len(rec.runs) != 1 {
		t.Fatalf("checkpoints = %d, want 1", len(rec.runs))
	}
	if run := rec.runs[0]; run.ID != "run-7" || run.Buildings != 2 || run.Joints != 1 || run.Money != 1234 {
		t.Errorf("checkpoint = %+v", run)
	}
}

func TestStatsSystem_PeakHeight(t *testing.T) {
	w := towerWorld()
	s := NewStatsSystem(w, nil)
	s.Update()
	if got := w.Resources.Stats.PeakHeight; got != 90 {
		t.Errorf("peak = %v, want 90", got)
	}

	// Peak never falls
	top := w.Components.Building.All()[1]
	w.DestroyEntity(top)
	s.Update()
	if got := w.Resources.Stats.PeakHeight; got != 90 {
		t.Errorf("peak after collapse = %v", got)
	}
}

func TestRunRow(t *testing.T) {
	w := towerWorld()
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	w.Resources.Stats.Started = started
	ended := started.Add(time.Hour)

	run := RunRow(w, ended)
	if run.StartedAt != started || run.EndedAt != ended || run.Quakes != 3 || run.Buildings != 2 {
		t.Errorf("run = %+v", run)
	}
}
