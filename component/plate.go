package component

import "github.com/lixenwraith/tremor/vmath"

// Plate is one element of the earthquake chain
// PendingForce is consumed and cleared by the next physics step
type Plate struct {
	Index        int
	Size         vmath.Vec2
	PendingForce float64
}

// Ground is the static body the chain is anchored to
type Ground struct {
	Size vmath.Vec2
}
