package engine

import "github.com/lixenwraith/tremor/component"

// ComponentStore holds the typed stores of every component kind
type ComponentStore struct {
	Pose       *Store[component.Pose]
	Building   *Store[component.Building]
	Chimney    *Store[component.Chimney]
	Preview    *Store[component.PreviewBuilding]
	Joint      *Store[component.BuildingJoint]
	Plate      *Store[component.Plate]
	Ground     *Store[component.Ground]
	Inhabitant *Store[component.Inhabitant]
	Money      *Store[component.MoneyVisual]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Pose:       NewStore[component.Pose](),
		Building:   NewStore[component.Building](),
		Chimney:    NewStore[component.Chimney](),
		Preview:    NewStore[component.PreviewBuilding](),
		Joint:      NewStore[component.BuildingJoint](),
		Plate:      NewStore[component.Plate](),
		Ground:     NewStore[component.Ground](),
		Inhabitant: NewStore[component.Inhabitant](),
		Money:      NewStore[component.MoneyVisual](),
	}
}

func (c ComponentStore) all() []AnyStore {
	return []AnyStore{
		c.Pose, c.Building, c.Chimney, c.Preview, c.Joint,
		c.Plate, c.Ground, c.Inhabitant, c.Money,
	}
}
