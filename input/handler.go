// Package input latches tcell events into the per-frame input resource
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tremor/engine"
)

// Handler translates terminal events for the simulation loop
type Handler struct {
	res *engine.Resources
}

func NewHandler(res *engine.Resources) *Handler {
	return &Handler{res: res}
}

// HandleEvent applies one terminal event; returns false when the player quits
func (h *Handler) HandleEvent(ev tcell.Event) bool {
	in := h.res.Input

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			in.Keys = append(in.Keys, ev.Rune())
		}

	case *tcell.EventMouse:
		in.MouseX, in.MouseY = ev.Position()
		in.HasMouse = true

		down := ev.Buttons()&tcell.Button1 != 0
		if in.LeftDown && !down {
			// Latched until the frame phase has seen it
			in.LeftReleased = true
		}
		in.LeftDown = down

	case *tcell.EventResize:
		width, height := ev.Size()
		h.res.Camera.Fit(width, height)
	}

	return true
}
