package system

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/vmath"
)

func placeRequest(pos vmath.Vec2) event.GameEvent {
	return event.GameEvent{
		Type: event.EventPlaceBuilding,
		Payload: &event.PlaceBuildingPayload{
			Position: pos,
			Size:     vmath.V(100, 60),
		},
	}
}

func TestBuildSystem_FundsGatePlacement(t *testing.T) {
	w, space := newGame(1)
	w.Resources.Player.Money = 500
	s := NewBuildSystem(w, space).(*BuildSystem)

	before := w.Components.Building.Count()
	s.HandleEvent(placeRequest(vmath.V(0, 60)))

	if got := w.Resources.Player.Money; got != 0 {
		t.Fatalf("money after first placement = %d, want 0", got)
	}
	if got := w.Components.Building.Count(); got != before+1 {
		t.Fatalf("buildings = %d, want %d", got, before+1)
	}

	s.HandleEvent(placeRequest(vmath.V(0, 120)))
	if got := w.Components.Building.Count(); got != before+1 {
		t.Errorf("unaffordable placement committed: %d buildings", got)
	}
	if got := w.Resources.Player.Money; got != 0 {
		t.Errorf("money after rejection = %d", got)
	}

	placed := eventsOf(w, event.EventBuildingPlaced)
	if len(placed) != 1 {
		t.Fatalf("placed events = %d, want 1", len(placed))
	}
	payload := placed[0].Payload.(*event.BuildingPlacedPayload)
	if payload.Cost != 500 || payload.Height != 90 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestBuildSystem_SpawnsChildrenAndRerolls(t *testing.T) {
	w, space := newGame(3)
	s := NewBuildSystem(w, space).(*BuildSystem)

	ev := placeRequest(vmath.V(0, 60))
	ev.Payload.(*event.PlaceBuildingPayload).Variant = component.BuildingVariant{
		Kind:   component.VariantChimney,
		Offset: vmath.V(10, 50),
	}
	s.HandleEvent(ev)

	placed := eventsOf(w, event.EventBuildingPlaced)
	if len(placed) != 1 {
		t.Fatalf("placed events = %d", len(placed))
	}
	e := placed[0].Payload.(*event.BuildingPlacedPayload).Entity
	b, ok := w.Components.Building.Get(e)
	if !ok {
		t.Fatal("building component missing")
	}
	if !w.Components.Chimney.Has(b.Chimney) {
		t.Error("chimney child missing")
	}
	if len(b.Inhabitants) != 1 || !w.Components.Inhabitant.Has(b.Inhabitants[0]) {
		t.Errorf("inhabitants = %v", b.Inhabitants)
	}
	if _, _, ok := space.Pose(e); !ok {
		t.Error("building has no body")
	}
	if got, ok := w.Spatial.BuildingAt(vmath.V(0, 60)); !ok || got != e {
		t.Error("spatial index not rebuilt")
	}

	_, p, _ := w.Components.Preview.First()
	if p.Size.X < constant.BuildingWidthMin || p.Size.X > constant.BuildingWidthMax {
		t.Errorf("rerolled width %v", p.Size.X)
	}
}

func TestRandomPreview_Ranges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	chimneys := 0
	const n = 2000
	for i := 0; i < n; i++ {
		size, variant := RandomPreview(rng)
		if size.X < constant.BuildingWidthMin || size.X > constant.BuildingWidthMax || size.Y != constant.BuildingHeight {
			t.Fatalf("size %v out of range", size)
		}
		if !variant.HasChimney() {
			continue
		}
		chimneys++
		if lim := constant.ChimneyOffsetFactor * size.X; variant.Offset.X < -lim || variant.Offset.X > lim {
			t.Errorf("chimney x %v beyond %v", variant.Offset.X, lim)
		}
		if variant.Offset.Y != constant.BuildingHeight/2+constant.ChimneyRoofOffset {
			t.Errorf("chimney y %v", variant.Offset.Y)
		}
	}
	// 20% chimneys, loosely
	if chimneys < n/10 || chimneys > n*3/10 {
		t.Errorf("chimney share %d/%d", chimneys, n)
	}
}

func TestSpawnWorld_Scene(t *testing.T) {
	w, space := newGame(1)

	if got := w.Components.Plate.Count(); got != constant.PlateCount {
		t.Errorf("plates = %d, want %d", got, constant.PlateCount)
	}
	if got := w.Components.Building.Count(); got != 1 {
		t.Errorf("buildings = %d, want 1", got)
	}
	if got := w.Components.Ground.Count(); got != 1 {
		t.Errorf("ground = %d", got)
	}
	if _, p, ok := w.Components.Preview.First(); !ok || p.Size != vmath.V(100, 60) {
		t.Errorf("preview = %+v %v", p, ok)
	}
	// Plates and the first building are dynamic bodies
	if got := space.BodyCount(); got != constant.PlateCount+1 {
		t.Errorf("bodies = %d", got)
	}
}
