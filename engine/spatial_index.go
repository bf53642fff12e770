package engine

import (
	"slices"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// Grid coverage: the plate chain spans x -500..500, towers grow upward from y -80
var gridOrigin = vmath.V(-1280, -320)

const (
	gridCellSize = 64.0
	gridWidth    = 40
	gridHeight   = 80
)

// SpatialIndex answers overlap queries against buildings and chimneys
// Rebuilt from poses whenever bodies may have moved
type SpatialIndex struct {
	world     *World
	buildings *SpatialGrid
	chimneys  *SpatialGrid
	seen      map[core.Entity]struct{}
	scratch   []core.Entity
}

func NewSpatialIndex(w *World) *SpatialIndex {
	return &SpatialIndex{
		world:     w,
		buildings: NewSpatialGrid(gridOrigin, gridCellSize, gridWidth, gridHeight),
		chimneys:  NewSpatialGrid(gridOrigin, gridCellSize, gridWidth, gridHeight),
		seen:      make(map[core.Entity]struct{}),
	}
}

// Rebuild re-buckets every building and chimney from current poses
func (s *SpatialIndex) Rebuild() {
	s.buildings.Clear()
	s.chimneys.Clear()

	c := s.world.Components
	for _, e := range c.Building.All() {
		box, ok := s.world.BuildingBox(e)
		if !ok {
			continue
		}
		s.buildings.Insert(e, box.AABB())
	}
	for _, e := range c.Chimney.All() {
		box, ok := s.world.ChimneyBox(e)
		if !ok {
			continue
		}
		s.chimneys.Insert(e, box.AABB())
	}
}

// candidates returns deduplicated entities from grid cells touching box, ordered by creation slot
func (s *SpatialIndex) candidates(g *SpatialGrid, box vmath.AABB) []core.Entity {
	clear(s.seen)
	s.scratch = s.scratch[:0]
	g.Query(box, func(e core.Entity) {
		if _, dup := s.seen[e]; dup {
			return
		}
		s.seen[e] = struct{}{}
		s.scratch = append(s.scratch, e)
	})
	slices.SortFunc(s.scratch, func(a, b core.Entity) int {
		return int(a.Index()) - int(b.Index())
	})
	return s.scratch
}

// BuildingsInCircle returns buildings whose collider overlaps the circle
func (s *SpatialIndex) BuildingsInCircle(center vmath.Vec2, r float64) []core.Entity {
	box := vmath.AABB{Min: center.Sub(vmath.V(r, r)), Max: center.Add(vmath.V(r, r))}
	var out []core.Entity
	for _, e := range s.candidates(s.buildings, box) {
		obb, ok := s.world.BuildingBox(e)
		if ok && obb.OverlapsCircle(center, r) {
			out = append(out, e)
		}
	}
	return out
}

// BuildingAt returns the first building containing p
func (s *SpatialIndex) BuildingAt(p vmath.Vec2) (core.Entity, bool) {
	box := vmath.AABB{Min: p, Max: p}
	for _, e := range s.candidates(s.buildings, box) {
		obb, ok := s.world.BuildingBox(e)
		if ok && obb.Contains(p) {
			return e, true
		}
	}
	return 0, false
}

// OverlapsBuilding reports whether box intersects any building
func (s *SpatialIndex) OverlapsBuilding(box vmath.OBB) bool {
	for _, e := range s.candidates(s.buildings, box.AABB()) {
		obb, ok := s.world.BuildingBox(e)
		if ok && obb.Overlaps(box) {
			return true
		}
	}
	return false
}

// OverlapsChimney reports whether box intersects any chimney
func (s *SpatialIndex) OverlapsChimney(box vmath.OBB) bool {
	for _, e := range s.candidates(s.chimneys, box.AABB()) {
		obb, ok := s.world.ChimneyBox(e)
		if ok && obb.Overlaps(box) {
			return true
		}
	}
	return false
}

// BuildingBox returns the world collider of a building
func (w *World) BuildingBox(e core.Entity) (vmath.OBB, bool) {
	b, ok := w.Components.Building.Get(e)
	if !ok {
		return vmath.OBB{}, false
	}
	pose, ok := w.Components.Pose.Get(e)
	if !ok {
		return vmath.OBB{}, false
	}
	return b.Box(pose), true
}

// ChimneyBox returns the world collider of a chimney from its parent pose
func (w *World) ChimneyBox(e core.Entity) (vmath.OBB, bool) {
	ch, ok := w.Components.Chimney.Get(e)
	if !ok {
		return vmath.OBB{}, false
	}
	pose, ok := w.Components.Pose.Get(ch.Parent)
	if !ok {
		return vmath.OBB{}, false
	}
	return component.ChimneyBox(pose, ch.Offset), true
}
