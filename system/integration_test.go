package system

import (
	"testing"

	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/vmath"
)

// wireGame registers every simulation system the way the binary does
func wireGame(seed int64) (*engine.World, *engine.ClockScheduler) {
	w, space := newGame(seed)

	w.AddSystem(NewCursorSystem(w))
	w.AddSystem(NewToolSystem(w))
	w.AddSystem(NewPlacementSystem(w))
	w.AddSystem(NewJointSystem(w, space))
	w.AddSystem(NewCursorTextSystem(w))
	w.AddSystem(NewMoneyVisualSystem(w))
	w.AddSystem(NewAudioSystem(w, nil))
	w.AddSystem(NewSpectatorSystem(w, nil))

	w.AddFixedSystem(NewBuildSystem(w, space))
	w.AddFixedSystem(NewEarthquakeSystem(w))
	w.AddFixedSystem(NewPhysicsSystem(w, space))
	w.AddFixedSystem(NewInhabitantSystem(w))
	w.AddFixedSystem(NewStatsSystem(w, nil))
	w.AddFixedSystem(NewSnapshotSystem(w, ""))

	w.Resources.Camera.Fit(80, 24)
	return w, engine.NewClockScheduler(w, constant.FixedStep, constant.MaxFixedSteps)
}

func pointAt(w *engine.World, p vmath.Vec2, release bool) {
	in := w.Resources.Input
	in.HasMouse = true
	in.MouseX, in.MouseY = w.Resources.Camera.WorldToScreen(p)
	in.LeftReleased = release
}

func TestIntegration_ClickPlacesBuilding(t *testing.T) {
	w, cs := wireGame(1)

	pointAt(w, vmath.V(10, 45), true)
	if steps := cs.Advance(constant.FixedStep); steps != 1 {
		t.Fatalf("fixed steps = %d", steps)
	}

	if got := w.Components.Building.Count(); got != 2 {
		t.Fatalf("buildings = %d, want 2", got)
	}
	if got := w.Resources.Player.Money; got != 10000-500 {
		t.Errorf("money = %d", got)
	}
	if got := w.Resources.Stats.Buildings; got != 0 {
		// The placed event is pushed during the step and counted on the next one
		t.Errorf("stats counted early: %d", got)
	}

	pointAt(w, vmath.V(10, 45), false)
	cs.Advance(constant.FixedStep)
	if got := w.Resources.Stats.Buildings; got != 1 {
		t.Errorf("stats buildings = %d, want 1", got)
	}
}

func TestIntegration_QuakeKey(t *testing.T) {
	w, cs := wireGame(1)

	w.Resources.Input.Keys = append(w.Resources.Input.Keys, 'x')
	cs.Advance(constant.FixedStep)
	if !w.Resources.Quake.Active() || w.Resources.Quake.Count != 1 {
		t.Fatalf("quake not started: count %d", w.Resources.Quake.Count)
	}

	// Let the quake run out
	for i := 0; i < 4*64; i++ {
		cs.Advance(constant.FixedStep)
	}
	if w.Resources.Quake.Active() {
		t.Error("quake still active after its window")
	}
	if w.Resources.Stats.Quakes != 1 {
		t.Errorf("stats quakes = %d", w.Resources.Stats.Quakes)
	}
}
