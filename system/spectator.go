package system

import (
	"time"

	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/network"
)

// FramePublisher receives spectator frames; satisfied by *network.Hub
type FramePublisher interface {
	Publish(network.Frame)
}

// SpectatorSystem samples the world at the configured rate for the websocket feed
type SpectatorSystem struct {
	world     *engine.World
	publisher FramePublisher

	interval time.Duration
	elapsed  time.Duration
	enabled  bool
}

func NewSpectatorSystem(world *engine.World, publisher FramePublisher) engine.System {
	s := &SpectatorSystem{
		world:     world,
		publisher: publisher,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *SpectatorSystem) Init() {
	rate := s.world.Resources.Tuning.Spectator.RateHz
	if rate <= 0 {
		rate = 10
	}
	s.interval = time.Second / time.Duration(rate)
	s.elapsed = 0
	s.enabled = s.publisher != nil
}

// Name returns system's name
func (s *SpectatorSystem) Name() string {
	return "spectator"
}

// Priority returns the system's priority
func (s *SpectatorSystem) Priority() int {
	return constant.PrioritySpectator
}

// Update publishes a frame once per interval
func (s *SpectatorSystem) Update() {
	if !s.enabled {
		return
	}
	s.elapsed += s.world.Resources.Time.DeltaTime
	if s.elapsed < s.interval {
		return
	}
	s.elapsed %= s.interval
	s.publisher.Publish(BuildFrame(s.world))
}

// BuildFrame copies the visible world into a spectator frame
func BuildFrame(w *engine.World) network.Frame {
	res := w.Resources
	f := network.Frame{
		Tick:  res.Time.Tick,
		RunID: res.Stats.RunID,
		Money: res.Player.Money,
		Quake: network.QuakeFrame{
			Active: res.Quake.Active(),
			Count:  res.Quake.Count,
			NextIn: res.Quake.Next.Remaining().Seconds(),
		},
		Buildings: []network.BuildingFrame{},
		Plates:    []network.PlateFrame{},
		Joints:    []network.JointFrame{},
	}

	for _, e := range w.Components.Building.All() {
		b, _ := w.Components.Building.Get(e)
		pose, ok := w.Components.Pose.Get(e)
		if !ok {
			continue
		}
		bf := network.BuildingFrame{Pos: pair(pose.Position), Angle: pose.Angle, Size: pair(b.Size)}
		if b.Variant.HasChimney() {
			c := pair(pose.ToWorld(b.Variant.Offset))
			bf.Chimney = &c
		}
		f.Buildings = append(f.Buildings, bf)
	}

	for _, e := range w.Components.Plate.All() {
		if pose, ok := w.Components.Pose.Get(e); ok {
			f.Plates = append(f.Plates, network.PlateFrame{Pos: pair(pose.Position)})
		}
	}

	for _, e := range w.Components.Joint.All() {
		j, _ := w.Components.Joint.Get(e)
		pa, okA := w.Components.Pose.Get(j.A)
		pb, okB := w.Components.Pose.Get(j.B)
		if !okA || !okB {
			continue
		}
		f.Joints = append(f.Joints, network.JointFrame{
			A: pair(pa.ToWorld(j.AnchorA)),
			B: pair(pb.ToWorld(j.AnchorB)),
		})
	}
	return f
}
