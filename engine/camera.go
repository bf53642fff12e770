package engine

import "github.com/lixenwraith/tremor/vmath"

const (
	// World units covered by one terminal cell; cells are roughly twice as tall as wide
	unitsPerCol = 10.0
	unitsPerRow = 20.0
	// viewBottom keeps the ground strip in view
	viewBottom = -130.0
)

// CameraResource maps terminal cells to world space, y up
type CameraResource struct {
	Center      vmath.Vec2
	UnitsPerCol float64
	UnitsPerRow float64
	Width       int
	Height      int
}

func NewCameraResource() *CameraResource {
	return &CameraResource{UnitsPerCol: unitsPerCol, UnitsPerRow: unitsPerRow}
}

// Fit resizes the viewport and anchors the bottom edge above the ground
func (c *CameraResource) Fit(width, height int) {
	c.Width = width
	c.Height = height
	c.Center = vmath.V(0, viewBottom+float64(height)*c.UnitsPerRow/2)
}

// ScreenToWorld returns the world position of a cell center
func (c *CameraResource) ScreenToWorld(col, row int) vmath.Vec2 {
	return vmath.V(
		c.Center.X+(float64(col)+0.5-float64(c.Width)/2)*c.UnitsPerCol,
		c.Center.Y-(float64(row)+0.5-float64(c.Height)/2)*c.UnitsPerRow,
	)
}

// WorldToScreen returns the cell containing a world point; may be off screen
func (c *CameraResource) WorldToScreen(p vmath.Vec2) (col, row int) {
	fx := (p.X-c.Center.X)/c.UnitsPerCol + float64(c.Width)/2
	fy := (c.Center.Y-p.Y)/c.UnitsPerRow + float64(c.Height)/2
	return floor(fx), floor(fy)
}

// Visible reports whether a cell lies in the viewport
func (c *CameraResource) Visible(col, row int) bool {
	return col >= 0 && col < c.Width && row >= 0 && row < c.Height
}

func floor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
