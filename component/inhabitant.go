package component

import (
	"time"

	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// Inhabitant walks the floor of its building and pays rent
type Inhabitant struct {
	Building core.Entity
	// X is the body-frame horizontal position on the floor
	X      float64
	Target float64
	Move   core.Timer
	Rent   core.Timer
}

// Local returns the body-frame center of the inhabitant standing on the floor of a building of size
func (i Inhabitant) Local(size vmath.Vec2) vmath.Vec2 {
	return vmath.V(i.X, -size.Y/2+constant.InhabitantHeight/2)
}

// MoneyVisual is a floating rent banknote
type MoneyVisual struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Age      time.Duration
	Amount   int64
}
