package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/vmath"
)

// fillBox paints every visible cell whose center lies inside box
func fillBox(s tcell.Screen, cam *engine.CameraResource, box vmath.OBB, ch rune, style tcell.Style) {
	bb := box.AABB()
	c0, r0 := cam.WorldToScreen(vmath.V(bb.Min.X, bb.Max.Y))
	c1, r1 := cam.WorldToScreen(vmath.V(bb.Max.X, bb.Min.Y))
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, cam.Width-1), min(r1, cam.Height-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if box.Contains(cam.ScreenToWorld(col, row)) {
				s.SetContent(col, row, ch, nil, style)
			}
		}
	}
}

// drawLine rasterizes a world segment with Bresenham over cells
func drawLine(s tcell.Screen, cam *engine.CameraResource, a, b vmath.Vec2, ch rune, style tcell.Style) {
	x0, y0 := cam.WorldToScreen(a)
	x1, y1 := cam.WorldToScreen(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if cam.Visible(x0, y0) {
			s.SetContent(x0, y0, ch, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPoint paints the cell containing p
func drawPoint(s tcell.Screen, cam *engine.CameraResource, p vmath.Vec2, ch rune, style tcell.Style) {
	col, row := cam.WorldToScreen(p)
	if cam.Visible(col, row) {
		s.SetContent(col, row, ch, nil, style)
	}
}

// drawText writes text left to right, clipped to the screen width; returns the next column
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	for _, ch := range text {
		if x >= w {
			break
		}
		if x >= 0 {
			s.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
