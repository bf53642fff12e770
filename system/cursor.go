package system

import (
	"fmt"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
)

// CursorSystem projects the mouse cell into world space once per frame
type CursorSystem struct {
	world *engine.World

	enabled bool
}

func NewCursorSystem(world *engine.World) engine.System {
	s := &CursorSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *CursorSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *CursorSystem) Name() string {
	return "cursor"
}

// Priority returns the system's priority
func (s *CursorSystem) Priority() int {
	return constant.PriorityCursor
}

// Update refreshes the cursor world position; off-screen pointers invalidate it
func (s *CursorSystem) Update() {
	if !s.enabled {
		return
	}

	res := s.world.Resources
	in := res.Input
	if !in.HasMouse || !res.Camera.Visible(in.MouseX, in.MouseY) {
		res.Cursor.Valid = false
		return
	}
	res.Cursor.World = res.Camera.ScreenToWorld(in.MouseX, in.MouseY)
	res.Cursor.Valid = true
}

// ToolSystem maps tool and command keys
type ToolSystem struct {
	world *engine.World

	enabled bool
}

func NewToolSystem(world *engine.World) engine.System {
	s := &ToolSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *ToolSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *ToolSystem) Name() string {
	return "tool"
}

// Priority returns the system's priority
func (s *ToolSystem) Priority() int {
	return constant.PriorityTool
}

// Update handles B/J tool selection, X quake trigger and S snapshot
func (s *ToolSystem) Update() {
	if !s.enabled {
		return
	}

	res := s.world.Resources
	for _, k := range res.Input.Keys {
		switch k {
		case 'b', 'B':
			res.Tool.Select(component.ToolBuild)
		case 'j', 'J':
			res.Tool.Select(component.ToolJoint)
		case 'x', 'X':
			s.world.PushEvent(event.EventQuakeTrigger, nil)
		case 's', 'S':
			s.world.PushEvent(event.EventSnapshotRequest, nil)
		}
	}
}

// CursorTextSystem writes the cost label shown next to the cursor
type CursorTextSystem struct {
	world *engine.World

	enabled bool
}

func NewCursorTextSystem(world *engine.World) engine.System {
	s := &CursorTextSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *CursorTextSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *CursorTextSystem) Name() string {
	return "cursor_text"
}

// Priority returns the system's priority (after placement and joint preview)
func (s *CursorTextSystem) Priority() int {
	return constant.PriorityCursorText
}

func (s *CursorTextSystem) Update() {
	if !s.enabled {
		return
	}
	res := s.world.Resources
	res.Cursor.Text = CostLabel(res)
}

// CostLabel renders the cost hint for the selected tool
func CostLabel(res *engine.Resources) string {
	money := res.Player.Money
	eco := res.Tuning.Economy

	switch res.Tool.Selected {
	case component.ToolJoint:
		length := res.Tool.Joint.Length
		if length < constant.JointLabelMinLength {
			return ""
		}
		cost := JointCost(length, eco.JointCostRate)
		if money < cost {
			return fmt.Sprintf("Requires %d$", cost)
		}
		return fmt.Sprintf("%d$", cost)
	default:
		if money < eco.PlacementCost {
			return fmt.Sprintf("Requires %d$", eco.PlacementCost)
		}
		return ""
	}
}
