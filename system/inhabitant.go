package system

import (
	"math"
	"slices"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/vmath"
)

// Rent returns what an inhabitant pays: higher and wider buildings pay more
func Rent(pose component.Pose, size vmath.Vec2) int64 {
	return int64(pose.Position.Y + size.X)
}

// InhabitantSystem walks inhabitants, collects rent and evicts them from tilted buildings
type InhabitantSystem struct {
	world *engine.World

	enabled bool
}

func NewInhabitantSystem(world *engine.World) engine.System {
	s := &InhabitantSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *InhabitantSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *InhabitantSystem) Name() string {
	return "inhabitant"
}

// Priority returns the system's priority (after poses are synced)
func (s *InhabitantSystem) Priority() int {
	return constant.PriorityInhabitant
}

func (s *InhabitantSystem) Update() {
	if !s.enabled {
		return
	}

	c := s.world.Components
	dt := s.world.Resources.Time.DeltaTime

	for _, e := range c.Inhabitant.All() {
		inh, ok := c.Inhabitant.Get(e)
		if !ok {
			continue
		}
		building, ok := c.Building.Get(inh.Building)
		if !ok {
			continue
		}
		pose, _ := c.Pose.Get(inh.Building)

		angle := vmath.WrapAngle(pose.Angle)
		if math.Abs(angle) > constant.InhabitantTiltLimit {
			s.evict(e, inh.Building, building)
			continue
		}

		half := building.Size.X/2 - constant.InhabitantWidth/2
		walk := vmath.Sign(inh.Target-inh.X) * constant.InhabitantWalkSpeed
		drift := -angle * constant.InhabitantTiltDrift
		inh.X = vmath.Clamp(inh.X+(drift+walk)*dt.Seconds(), -half, half)

		inh.Move.Tick(dt)
		if inh.Move.JustFinished() {
			inh.Target = (s.world.Resources.Rand.Float64()*2 - 1) * half
			inh.Move.Duration = constant.InhabitantMoveEvery
		}

		inh.Rent.Tick(dt)
		if inh.Rent.JustFinished() {
			s.collect(inh, pose, building)
		}

		c.Inhabitant.Set(e, inh)
	}
}

func (s *InhabitantSystem) collect(inh component.Inhabitant, pose component.Pose, building component.Building) {
	res := s.world.Resources
	amount := Rent(pose, building.Size)
	res.Player.Credit(amount)

	// Banknote drifts up and sideways before falling
	rng := res.Rand
	dir := vmath.V(float64(rng.Intn(40)-20), float64(rng.Intn(99)+1)).Normalize()
	m := s.world.CreateEntity()
	s.world.Components.Money.Set(m, component.MoneyVisual{
		Position: pose.ToWorld(inh.Local(building.Size)),
		Velocity: dir,
		Amount:   amount,
	})

	s.world.PushEvent(event.EventRentCollected, &event.RentPayload{Building: inh.Building, Amount: amount})
}

func (s *InhabitantSystem) evict(e, b core.Entity, building component.Building) {
	building.Inhabitants = slices.DeleteFunc(building.Inhabitants, func(x core.Entity) bool {
		return x == e
	})
	s.world.Components.Building.Set(b, building)
	s.world.DestroyEntity(e)
	s.world.PushEvent(event.EventInhabitantEvicted, &event.InhabitantPayload{Inhabitant: e, Building: b})
}

// MoneyVisualSystem animates rent banknotes and removes them when they expire
type MoneyVisualSystem struct {
	world *engine.World

	enabled bool
}

func NewMoneyVisualSystem(world *engine.World) engine.System {
	s := &MoneyVisualSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *MoneyVisualSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *MoneyVisualSystem) Name() string {
	return "money_visual"
}

// Priority returns the system's priority
func (s *MoneyVisualSystem) Priority() int {
	return constant.PriorityMoneyVisual
}

func (s *MoneyVisualSystem) Update() {
	if !s.enabled {
		return
	}

	store := s.world.Components.Money
	dt := s.world.Resources.Time.DeltaTime
	for _, e := range store.All() {
		m, ok := store.Get(e)
		if !ok {
			continue
		}
		m.Age += dt
		if m.Age >= constant.MoneyVisualLifetime {
			s.world.DestroyEntity(e)
			continue
		}
		m.Velocity.Y -= constant.MoneyVisualGravity * dt.Seconds() * m.Age.Seconds()
		m.Position = m.Position.Add(m.Velocity.Scale(constant.MoneyVisualSpeed * dt.Seconds()))
		store.Set(e, m)
	}
}
