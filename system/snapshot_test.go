package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/storage"
	"github.com/lixenwraith/tremor/vmath"
)

// towerWorld is the default scene plus a chimney building on top, pinned to the base
func towerWorld() *engine.World {
	w, space := newGame(1)
	base := w.Components.Building.All()[0]
	top := SpawnBuilding(w, space, component.Pose{Position: vmath.V(10, 60)}, vmath.V(80, 60),
		component.BuildingVariant{Kind: component.VariantChimney, Offset: vmath.V(-12, 50)})

	je := w.CreateEntity()
	space.AddJoint(je, base, top, vmath.V(0, 20), vmath.V(-10, -20))
	w.Components.Joint.Set(je, component.BuildingJoint{
		A: base, B: top, AnchorA: vmath.V(0, 20), AnchorB: vmath.V(-10, -20), RestLength: 20,
	})
	w.Spatial.Rebuild()

	res := w.Resources
	res.Stats.RunID = "run-7"
	res.Player.Money = 1234
	res.Quake.Count = 3
	res.Quake.Next.Duration = 7 * time.Second
	return w
}

func TestCapture(t *testing.T) {
	snap := Capture(towerWorld())

	if snap.Header.RunID != "run-7" || snap.Money != 1234 || snap.QuakeCount != 3 || snap.NextInterval != 7 {
		t.Errorf("header fields = %+v", snap)
	}
	if len(snap.Buildings) != 2 {
		t.Fatalf("buildings = %d", len(snap.Buildings))
	}
	if snap.Buildings[0].Chimney != nil {
		t.Error("base building has a chimney")
	}
	top := snap.Buildings[1]
	if top.Pos != [2]float64{10, 60} || top.Size != [2]float64{80, 60} || top.Chimney == nil || *top.Chimney != [2]float64{-12, 50} {
		t.Errorf("top = %+v", top)
	}
	if len(snap.Joints) != 1 || snap.Joints[0].A != 0 || snap.Joints[0].B != 1 || snap.Joints[0].RestLength != 20 {
		t.Errorf("joints = %+v", snap.Joints)
	}
}

func TestCapture_SkipsDanglingJoints(t *testing.T) {
	w := towerWorld()
	top := w.Components.Building.All()[1]
	w.DestroyEntity(top)

	if snap := Capture(w); len(snap.Joints) != 0 {
		t.Errorf("dangling joint captured: %+v", snap.Joints)
	}
}

func TestRestoreWorld_RoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.snap")
	if err := storage.SaveSnapshot(path, Capture(towerWorld())); err != nil {
		t.Fatal(err)
	}
	snap, err := storage.LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	w := engine.NewTestWorld(2)
	space := newSpace()
	RestoreWorld(w, space, snap)

	res := w.Resources
	if res.Player.Money != 1234 || res.Quake.Count != 3 || res.Quake.Next.Duration != 7*time.Second {
		t.Errorf("resources: money %d count %d next %v", res.Player.Money, res.Quake.Count, res.Quake.Next.Duration)
	}
	if got := w.Components.Building.Count(); got != 2 {
		t.Fatalf("buildings = %d", got)
	}
	if got := w.Components.Plate.Count(); got != 20 {
		t.Errorf("plates = %d", got)
	}
	if _, _, ok := w.Components.Preview.First(); !ok {
		t.Error("preview missing")
	}

	joints := w.Components.Joint.All()
	if len(joints) != 1 || !space.HasJoint(joints[0]) {
		t.Fatalf("joints = %v", joints)
	}
	j, _ := w.Components.Joint.Get(joints[0])
	top := w.Components.Building.All()[1]
	if j.B != top || j.AnchorB != vmath.V(-10, -20) {
		t.Errorf("joint = %+v", j)
	}
	b, _ := w.Components.Building.Get(top)
	if !b.Variant.HasChimney() || !w.Components.Chimney.Has(b.Chimney) {
		t.Error("chimney not restored")
	}
	if got, ok := w.Spatial.BuildingAt(vmath.V(10, 60)); !ok || got != top {
		t.Error("spatial index not rebuilt")
	}
}

func TestRestoreWorld_ClampsIntervalAndSkipsBadJoints(t *testing.T) {
	snap := storage.Snapshot{
		Money:        10,
		NextInterval: 1,
		Buildings:    []storage.BuildingV1{{Size: [2]float64{100, 60}}},
		Joints:       []storage.JointV1{{A: 0, B: 4}},
	}
	w := engine.NewTestWorld(1)
	RestoreWorld(w, newSpace(), snap)

	if got := w.Resources.Quake.Next.Duration; got != 5*time.Second {
		t.Errorf("next interval = %v, want floor", got)
	}
	if w.Components.Joint.Count() != 0 {
		t.Error("joint with out-of-range index restored")
	}
}

func TestSnapshotSystem_DisabledWithoutPath(t *testing.T) {
	w := engine.NewTestWorld(1)
	s := NewSnapshotSystem(w, "").(*SnapshotSystem)
	if s.enabled {
		t.Error("snapshot system enabled without a path")
	}
}

func TestSnapshotSystem_SaveWaitsForSaveInFlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.snap.zst")
	s := NewSnapshotSystem(towerWorld(), path).(*SnapshotSystem)

	// Hold the lock as a background save would
	s.mu.Lock()
	done := make(chan error, 1)
	go func() { done <- s.Save() }()

	select {
	case err := <-done:
		t.Fatalf("Save returned while another save held the file: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("snapshot written while another save was in flight")
	}

	s.mu.Unlock()
	if err := <-done; err != nil {
		t.Fatalf("Save: %v", err)
	}
	snap, err := storage.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Money != 1234 || len(snap.Buildings) != 2 {
		t.Errorf("saved money=%d buildings=%d", snap.Money, len(snap.Buildings))
	}
}

func TestSnapshotSystem_SaveDisabledWithoutPath(t *testing.T) {
	s := NewSnapshotSystem(towerWorld(), "").(*SnapshotSystem)
	if err := s.Save(); err != nil {
		t.Errorf("Save without path: %v", err)
	}
}
