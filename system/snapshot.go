package system

import (
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/physics"
	"github.com/lixenwraith/tremor/storage"
	"github.com/lixenwraith/tremor/vmath"
)

func pair(v vmath.Vec2) [2]float64 {
	return [2]float64{v.X, v.Y}
}

func unpair(p [2]float64) vmath.Vec2 {
	return vmath.V(p[0], p[1])
}

// Capture copies the tower into a snapshot
// Joints whose endpoints no longer resolve are left out
func Capture(w *engine.World) storage.Snapshot {
	res := w.Resources
	snap := storage.Snapshot{
		Header: storage.Header{
			RunID:   res.Stats.RunID,
			SavedAt: time.Now(),
		},
		Money:        res.Player.Money,
		QuakeCount:   res.Quake.Count,
		NextInterval: res.Quake.Next.Duration.Seconds(),
	}

	index := make(map[core.Entity]int)
	for _, e := range w.Components.Building.All() {
		b, ok := w.Components.Building.Get(e)
		if !ok {
			continue
		}
		pose, _ := w.Components.Pose.Get(e)
		rec := storage.BuildingV1{
			Pos:   pair(pose.Position),
			Angle: pose.Angle,
			Size:  pair(b.Size),
		}
		if b.Variant.HasChimney() {
			offset := pair(b.Variant.Offset)
			rec.Chimney = &offset
		}
		index[e] = len(snap.Buildings)
		snap.Buildings = append(snap.Buildings, rec)
	}

	for _, e := range w.Components.Joint.All() {
		j, ok := w.Components.Joint.Get(e)
		if !ok {
			continue
		}
		a, okA := index[j.A]
		b, okB := index[j.B]
		if !okA || !okB {
			continue
		}
		snap.Joints = append(snap.Joints, storage.JointV1{
			A:          a,
			B:          b,
			AnchorA:    pair(j.AnchorA),
			AnchorB:    pair(j.AnchorB),
			RestLength: j.RestLength,
		})
	}
	return snap
}

// RestoreWorld builds the scene from a snapshot instead of the default tower
func RestoreWorld(w *engine.World, space *physics.Space, snap storage.Snapshot) {
	SpawnGround(w, space)

	buildings := make([]core.Entity, 0, len(snap.Buildings))
	for _, rec := range snap.Buildings {
		variant := component.BuildingVariant{}
		if rec.Chimney != nil {
			variant = component.BuildingVariant{Kind: component.VariantChimney, Offset: unpair(*rec.Chimney)}
		}
		pose := component.Pose{Position: unpair(rec.Pos), Angle: rec.Angle}
		buildings = append(buildings, SpawnBuilding(w, space, pose, unpair(rec.Size), variant))
	}

	for _, rec := range snap.Joints {
		if rec.A < 0 || rec.A >= len(buildings) || rec.B < 0 || rec.B >= len(buildings) {
			continue
		}
		je := w.CreateEntity()
		a, b := buildings[rec.A], buildings[rec.B]
		if !space.AddJoint(je, a, b, unpair(rec.AnchorA), unpair(rec.AnchorB)) {
			w.DestroyEntity(je)
			continue
		}
		w.Components.Joint.Set(je, component.BuildingJoint{
			A:          a,
			B:          b,
			AnchorA:    unpair(rec.AnchorA),
			AnchorB:    unpair(rec.AnchorB),
			RestLength: rec.RestLength,
		})
	}

	SpawnPreview(w)
	w.Spatial.Rebuild()

	res := w.Resources
	res.Player.Money = snap.Money
	res.Quake.Count = snap.QuakeCount
	if snap.NextInterval > 0 {
		next := time.Duration(snap.NextInterval * float64(time.Second))
		res.Quake.Next.Duration = max(next, res.Tuning.Quake.IntervalFloor.Duration())
		res.Quake.Next.Reset()
	}
}

// SnapshotSystem saves the tower on request
type SnapshotSystem struct {
	world *engine.World
	path  string
	// mu orders saves so an older capture never replaces a newer one
	mu sync.Mutex

	enabled bool
}

// NewSnapshotSystem creates a snapshot system writing to path; empty path disables saving
func NewSnapshotSystem(world *engine.World, path string) engine.System {
	s := &SnapshotSystem{
		world: world,
		path:  path,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *SnapshotSystem) Init() {
	s.enabled = s.path != ""
}

// Name returns system's name
func (s *SnapshotSystem) Name() string {
	return "snapshot"
}

// Priority returns the system's priority
func (s *SnapshotSystem) Priority() int {
	return constant.PriorityStats
}

// EventTypes returns the event types SnapshotSystem handles
func (s *SnapshotSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSnapshotRequest,
	}
}

// HandleEvent captures the tower and writes it in the background
func (s *SnapshotSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || ev.Type != event.EventSnapshotRequest {
		return
	}
	snap := Capture(s.world)
	core.Go(func() {
		if err := s.write(snap); err != nil {
			log.Printf("snapshot: %v", err)
		}
	})
}

// Save captures the tower and writes it synchronously, after any save in flight
func (s *SnapshotSystem) Save() error {
	if !s.enabled {
		return nil
	}
	return s.write(Capture(s.world))
}

func (s *SnapshotSystem) write(snap storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.SaveSnapshot(s.path, snap); err != nil {
		return err
	}
	log.Printf("snapshot: saved %d buildings to %s", len(snap.Buildings), s.path)
	return nil
}

// Update implements System interface (no tick-based logic)
func (s *SnapshotSystem) Update() {}
