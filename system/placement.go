package system

import (
	"math"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/vmath"
)

// Candidate is a building under the cursor sensor
type Candidate struct {
	Entity core.Entity
	Box    vmath.OBB
}

// SelectCandidate picks the reference building for the next slot
// Same-row candidates (vertical span brackets the cursor) win over any other; the first one
// seen replaces a non-same-row pick regardless of distance. Ties keep the earlier candidate.
func SelectCandidate(cursor vmath.Vec2, candidates []Candidate) (Candidate, bool) {
	var best Candidate
	found, sameRowFound := false, false
	minDist := math.Inf(1)

	for _, c := range candidates {
		dist := c.Box.Distance(cursor)
		sameRow := c.Box.AABB().ContainsY(cursor.Y)

		switch {
		case !sameRow && sameRowFound:
			continue
		case sameRow && !sameRowFound:
			sameRowFound = true
		case dist >= minDist:
			continue
		}
		best, minDist, found = c, dist, true
	}
	return best, found
}

// PreviewSlot returns the preview center next to or on top of ref
// Returns false when the cursor is below the reference building
func PreviewSlot(cursor vmath.Vec2, ref vmath.OBB, size vmath.Vec2) (vmath.Vec2, bool) {
	box := ref.AABB()
	if box.ContainsY(cursor.Y) {
		if cursor.X < ref.Center.X {
			return vmath.V(box.Min.X-size.X/2, ref.Center.Y), true
		}
		return vmath.V(box.Max.X+size.X/2, ref.Center.Y), true
	}
	if cursor.Y >= box.Max.Y {
		return vmath.V(cursor.X, box.Max.Y+size.Y/2), true
	}
	return cursor, false
}

// PlacementSystem moves the preview building to the best slot near the cursor
// and emits a placement request when a valid slot is released on
type PlacementSystem struct {
	world *engine.World

	candidates []Candidate

	enabled bool
}

func NewPlacementSystem(world *engine.World) engine.System {
	s := &PlacementSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *PlacementSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *PlacementSystem) Name() string {
	return "placement"
}

// Priority returns the system's priority
func (s *PlacementSystem) Priority() int {
	return constant.PriorityPlacement
}

// Update recomputes preview pose and validity, then checks for a confirmed release
func (s *PlacementSystem) Update() {
	if !s.enabled {
		return
	}

	res := s.world.Resources
	e, preview, ok := s.world.Components.Preview.First()
	if !ok {
		return
	}
	pose, _ := s.world.Components.Pose.Get(e)

	if res.Tool.Selected != component.ToolBuild || !res.Cursor.Valid {
		preview.Visible = false
		s.world.Components.Preview.Set(e, preview)
		return
	}

	cursor := res.Cursor.World
	s.collect(cursor)

	ref, found := SelectCandidate(cursor, s.candidates)
	if found {
		pose.Position, preview.Visible = PreviewSlot(cursor, ref.Box, preview.Size)
	} else {
		pose.Position, preview.Visible = cursor, false
	}
	pose.Angle = 0

	preview.Blocked = s.blocked(preview, pose)
	preview.BottomSupport = pose.Position.Y < constant.GroundSupportY ||
		s.world.Spatial.OverlapsBuilding(preview.SupportSensor(pose))

	s.world.Components.Pose.Set(e, pose)
	s.world.Components.Preview.Set(e, preview)

	if res.Input.LeftReleased && preview.CanPlace() {
		s.world.PushEvent(event.EventPlaceBuilding, &event.PlaceBuildingPayload{
			Position: pose.Position,
			Angle:    pose.Angle,
			Size:     preview.Size,
			Variant:  preview.Variant,
		})
	}
}

func (s *PlacementSystem) collect(cursor vmath.Vec2) {
	s.candidates = s.candidates[:0]
	for _, b := range s.world.Spatial.BuildingsInCircle(cursor, constant.CursorSensorRadius) {
		box, ok := s.world.BuildingBox(b)
		if !ok {
			continue
		}
		s.candidates = append(s.candidates, Candidate{Entity: b, Box: box})
	}
}

func (s *PlacementSystem) blocked(preview component.PreviewBuilding, pose component.Pose) bool {
	for _, box := range preview.Colliders(pose) {
		if s.world.Spatial.OverlapsBuilding(box) || s.world.Spatial.OverlapsChimney(box) {
			return true
		}
	}
	return false
}
