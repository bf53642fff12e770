package system

import (
	"github.com/lixenwraith/tremor/config"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/physics"
)

func newSpace() *physics.Space {
	return physics.NewSpace(physics.ParamsFromTuning(config.Default().Physics))
}

// newGame returns a seeded world holding the default scene
func newGame(seed int64) (*engine.World, *physics.Space) {
	w := engine.NewTestWorld(seed)
	space := newSpace()
	SpawnWorld(w, space)
	return w, space
}

// eventsOf drains the queue and keeps events of type t
func eventsOf(w *engine.World, t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range w.Events().Consume() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
