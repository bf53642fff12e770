package system

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/vmath"
)

func TestRent(t *testing.T) {
	if got := Rent(component.Pose{Position: vmath.V(0, 30)}, vmath.V(100, 60)); got != 130 {
		t.Errorf("Rent = %d, want 130", got)
	}
	if got := Rent(component.Pose{Position: vmath.V(0, 90.7)}, vmath.V(80, 60)); got != 170 {
		t.Errorf("Rent truncates: %d", got)
	}
}

// inhabitedWorld holds a single building at pose with its inhabitant
func inhabitedWorld(pose component.Pose) (*engine.World, core.Entity, core.Entity) {
	w := engine.NewTestWorld(1)
	b := SpawnBuilding(w, newSpace(), pose, vmath.V(100, 60), component.BuildingVariant{})
	building, _ := w.Components.Building.Get(b)
	return w, b, building.Inhabitants[0]
}

func TestInhabitantSystem_CollectsRent(t *testing.T) {
	w, b, _ := inhabitedWorld(component.Pose{Position: vmath.V(0, 30)})
	s := NewInhabitantSystem(w)

	w.Resources.Time.DeltaTime = 10 * time.Second
	s.Update()

	if got := w.Resources.Player.Money; got != 10000+130 {
		t.Errorf("money = %d, want %d", got, 10000+130)
	}
	if w.Components.Money.Count() != 1 {
		t.Fatalf("banknotes = %d, want 1", w.Components.Money.Count())
	}
	_, note, _ := w.Components.Money.First()
	if note.Amount != 130 || note.Velocity.Y <= 0 || math.Abs(note.Velocity.Len()-1) > 1e-9 {
		t.Errorf("banknote = %+v", note)
	}

	rent := eventsOf(w, event.EventRentCollected)
	if len(rent) != 1 {
		t.Fatalf("rent events = %d", len(rent))
	}
	if p := rent[0].Payload.(*event.RentPayload); p.Building != b || p.Amount != 130 {
		t.Errorf("payload = %+v", p)
	}
}

func TestInhabitantSystem_TiltDriftAndClamp(t *testing.T) {
	w, _, e := inhabitedWorld(component.Pose{Angle: 0.5})
	inh, _ := w.Components.Inhabitant.Get(e)
	inh.Move = core.NewTimer(time.Minute, core.TimerRepeating)
	w.Components.Inhabitant.Set(e, inh)
	s := NewInhabitantSystem(w)

	w.Resources.Time.DeltaTime = time.Second
	s.Update()
	inh, _ = w.Components.Inhabitant.Get(e)
	// Standing on its target, it only slides down the tilt
	if want := -0.5 * 10; math.Abs(inh.X-want) > 1e-9 {
		t.Errorf("x after drift = %v, want %v", inh.X, want)
	}

	// Walking back toward the target cannot beat the slide
	w.Resources.Time.DeltaTime = 100 * time.Second
	s.Update()
	inh, _ = w.Components.Inhabitant.Get(e)
	if want := -(50 - 3.75); math.Abs(inh.X-want) > 1e-9 {
		t.Errorf("x not clamped: %v, want %v", inh.X, want)
	}
}

func TestInhabitantSystem_EvictsOnTilt(t *testing.T) {
	w, b, e := inhabitedWorld(component.Pose{Angle: math.Pi / 2})
	NewInhabitantSystem(w).Update()

	if w.Alive(e) || w.Components.Inhabitant.Has(e) {
		t.Error("inhabitant survived a toppled building")
	}
	building, _ := w.Components.Building.Get(b)
	if len(building.Inhabitants) != 0 {
		t.Errorf("building still lists %v", building.Inhabitants)
	}
	if evs := eventsOf(w, event.EventInhabitantEvicted); len(evs) != 1 {
		t.Errorf("evicted events = %d", len(evs))
	}
}

func TestInhabitantSystem_WrappedAngleStays(t *testing.T) {
	// A full turn is upright again
	w, _, e := inhabitedWorld(component.Pose{Angle: 2 * math.Pi})
	NewInhabitantSystem(w).Update()
	if !w.Alive(e) {
		t.Error("inhabitant evicted from an upright building")
	}
}

func TestMoneyVisualSystem(t *testing.T) {
	w := engine.NewTestWorld(1)
	m := w.CreateEntity()
	w.Components.Money.Set(m, component.MoneyVisual{Velocity: vmath.V(0, 1), Amount: 100})
	s := NewMoneyVisualSystem(w)

	w.Resources.Time.DeltaTime = time.Second
	s.Update()
	note, ok := w.Components.Money.Get(m)
	if !ok {
		t.Fatal("banknote expired early")
	}
	if math.Abs(note.Velocity.Y-0.5) > 1e-9 || math.Abs(note.Position.Y-50) > 1e-9 {
		t.Errorf("banknote = %+v", note)
	}

	w.Resources.Time.DeltaTime = 4 * time.Second
	s.Update()
	if w.Alive(m) {
		t.Error("banknote alive after its lifetime")
	}
}
