package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/vmath"
)

func TestWorld_GenerationTaggedHandles(t *testing.T) {
	w := NewTestWorld(1)

	a := w.CreateEntity()
	w.Components.Pose.Set(a, component.Pose{})
	if !w.Alive(a) {
		t.Fatal("new entity not alive")
	}

	w.DestroyEntity(a)
	if w.Alive(a) {
		t.Fatal("destroyed entity still alive")
	}
	if w.Components.Pose.Has(a) {
		t.Error("components survived destroy")
	}

	b := w.CreateEntity()
	if b.Index() != a.Index() {
		t.Fatalf("slot not reused: %d vs %d", b.Index(), a.Index())
	}
	if b == a || w.Alive(a) {
		t.Error("stale handle resolves after slot reuse")
	}
	if !w.Alive(b) {
		t.Error("reused slot not alive")
	}
	if w.Alive(0) {
		t.Error("zero entity is alive")
	}
	if w.EntityCount() != 1 {
		t.Errorf("EntityCount = %d, want 1", w.EntityCount())
	}
}

func TestStore_PreservesInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	w := NewTestWorld(1)
	var es []core.Entity
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		es = append(es, e)
		s.Set(e, i)
	}
	s.Remove(es[1])

	all := s.All()
	want := []core.Entity{es[0], es[2], es[3]}
	if len(all) != len(want) {
		t.Fatalf("All = %v", all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All[%d] = %v, want %v", i, all[i], want[i])
		}
	}
	first, v, ok := s.First()
	if !ok || first != es[0] || v != 0 {
		t.Errorf("First = %v %v %v", first, v, ok)
	}
}

type orderSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s *orderSystem) Init()         {}
func (s *orderSystem) Name() string  { return s.name }
func (s *orderSystem) Priority() int { return s.priority }
func (s *orderSystem) Update()       { *s.log = append(*s.log, s.name) }

type handlerSystem struct {
	orderSystem
}

func (s *handlerSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventQuakeTrigger}
}

func (s *handlerSystem) HandleEvent(ev event.GameEvent) {
	*s.log = append(*s.log, "event")
}

func TestClockScheduler_PhaseOrder(t *testing.T) {
	w := NewTestWorld(1)
	var log []string

	w.AddSystem(&orderSystem{name: "frame-late", priority: 20, log: &log})
	w.AddSystem(&orderSystem{name: "frame-early", priority: 10, log: &log})
	w.AddFixedSystem(&handlerSystem{orderSystem{name: "fixed", priority: 10, log: &log}})

	cs := NewClockScheduler(w, 10*time.Millisecond, 4)
	w.PushEvent(event.EventQuakeTrigger, nil)

	steps := cs.Advance(25 * time.Millisecond)
	if steps != 2 {
		t.Fatalf("steps = %d, want 2", steps)
	}
	want := []string{"frame-early", "frame-late", "event", "fixed", "fixed"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}

	// Leftover 5ms plus 5ms completes a third tick
	log = log[:0]
	if steps := cs.Advance(5 * time.Millisecond); steps != 1 {
		t.Errorf("steps = %d, want 1", steps)
	}
	if cs.TickCount() != 3 || w.Resources.Time.Tick != 3 {
		t.Errorf("tick = %d", cs.TickCount())
	}
}

func TestClockScheduler_DropsBacklog(t *testing.T) {
	w := NewTestWorld(1)
	cs := NewClockScheduler(w, 10*time.Millisecond, 3)
	if steps := cs.Advance(time.Second); steps != 3 {
		t.Errorf("steps = %d, want 3", steps)
	}
	if steps := cs.Advance(0); steps != 0 {
		t.Errorf("backlog not dropped: %d steps", steps)
	}
}

func TestSpatialIndex_Queries(t *testing.T) {
	w := NewTestWorld(1)
	a := w.SpawnBuildingAt(vmath.V(0, 0), vmath.V(100, 60), 0)
	b := w.SpawnBuildingAt(vmath.V(300, 0), vmath.V(100, 60), 0)
	ch := w.CreateEntity()
	w.Components.Chimney.Set(ch, component.Chimney{Parent: a, Offset: vmath.V(0, 50)})
	w.Spatial.Rebuild()

	got := w.Spatial.BuildingsInCircle(vmath.V(60, 0), 50)
	if len(got) != 1 || got[0] != a {
		t.Errorf("BuildingsInCircle = %v, want [%v]", got, a)
	}

	if e, ok := w.Spatial.BuildingAt(vmath.V(310, 20)); !ok || e != b {
		t.Errorf("BuildingAt = %v %v", e, ok)
	}
	if _, ok := w.Spatial.BuildingAt(vmath.V(150, 0)); ok {
		t.Error("BuildingAt found building in gap")
	}

	if !w.Spatial.OverlapsChimney(vmath.NewOBB(vmath.V(5, 55), vmath.V(10, 10), 0)) {
		t.Error("chimney overlap missed")
	}
	if w.Spatial.OverlapsBuilding(vmath.NewOBB(vmath.V(150, 0), vmath.V(99, 60), 0)) {
		t.Error("flush box reported as overlapping")
	}
}

func TestSpatialGrid_OverflowStillQueried(t *testing.T) {
	w := NewTestWorld(1)
	var last core.Entity
	for i := 0; i < MaxEntitiesPerCell+3; i++ {
		last = w.SpawnBuildingAt(vmath.V(0, float64(i)), vmath.V(10, 10), 0)
	}
	w.Spatial.Rebuild()
	if e, ok := w.Spatial.BuildingAt(vmath.V(0, float64(MaxEntitiesPerCell+2)+5)); !ok || e != last {
		t.Errorf("overflow entity not found: %v %v", e, ok)
	}
}

func TestToolResource_SelectResetsJoint(t *testing.T) {
	var tool ToolResource
	tool.Select(component.ToolJoint)
	tool.Joint.Arm(5, vmath.V(1, 1))
	tool.Select(component.ToolJoint)
	if !tool.Joint.Armed() {
		t.Fatal("reselecting same tool cleared joint state")
	}
	tool.Select(component.ToolBuild)
	if tool.Joint.Armed() {
		t.Error("tool switch kept joint state")
	}
}

func TestPlayerResource_Debit(t *testing.T) {
	p := PlayerResource{Money: 500}
	if !p.Debit(500) || p.Money != 0 {
		t.Fatalf("first debit failed, money %d", p.Money)
	}
	if p.Debit(500) {
		t.Error("debit succeeded with no money")
	}
	if p.Money != 0 {
		t.Errorf("money changed on rejected debit: %d", p.Money)
	}
}

func TestCamera_RoundTrip(t *testing.T) {
	c := NewCameraResource()
	c.Fit(80, 40)
	p := c.ScreenToWorld(10, 5)
	col, row := c.WorldToScreen(p)
	if col != 10 || row != 5 {
		t.Errorf("round trip = (%d,%d)", col, row)
	}
	bottom := c.ScreenToWorld(0, 39)
	if bottom.Y > -100 {
		t.Errorf("bottom row at y=%v, ground not in view", bottom.Y)
	}
}
