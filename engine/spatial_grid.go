package engine

import (
	"math"

	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// MaxEntitiesPerCell is set to 15 to ensure the Cell struct fits exactly into 128 bytes
// (2 cache lines) when Entity is uint64 (8 bytes)
// 15 * 8 (Entities) + 1 (Count) + 7 (Padding) = 128 bytes
const MaxEntitiesPerCell = 15

// Cell represents a single grid cell containing a fixed number of entities
type Cell struct {
	Count    uint8
	_        [7]byte
	Entities [MaxEntitiesPerCell]core.Entity
}

// SpatialGrid buckets world-space boxes into fixed-size cells
// Boxes outside the covered area are clamped into the edge cells
// Entities that do not fit a full cell go to the overflow list, which every query scans
type SpatialGrid struct {
	Origin   vmath.Vec2
	CellSize float64
	Width    int
	Height   int
	Cells    []Cell
	overflow []core.Entity
}

// NewSpatialGrid creates a grid covering width*height cells from origin
func NewSpatialGrid(origin vmath.Vec2, cellSize float64, width, height int) *SpatialGrid {
	return &SpatialGrid{
		Origin:   origin,
		CellSize: cellSize,
		Width:    width,
		Height:   height,
		Cells:    make([]Cell, width*height),
	}
}

func (g *SpatialGrid) cellRange(box vmath.AABB) (x0, y0, x1, y1 int) {
	toCell := func(v, origin float64, limit int) int {
		c := int(math.Floor((v - origin) / g.CellSize))
		return min(max(c, 0), limit-1)
	}
	x0 = toCell(box.Min.X, g.Origin.X, g.Width)
	x1 = toCell(box.Max.X, g.Origin.X, g.Width)
	y0 = toCell(box.Min.Y, g.Origin.Y, g.Height)
	y1 = toCell(box.Max.Y, g.Origin.Y, g.Height)
	return
}

// Insert adds an entity to every cell its box touches
func (g *SpatialGrid) Insert(e core.Entity, box vmath.AABB) {
	x0, y0, x1, y1 := g.cellRange(box)
	spilled := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := &g.Cells[y*g.Width+x]
			if cell.Count < MaxEntitiesPerCell {
				cell.Entities[cell.Count] = e
				cell.Count++
			} else {
				spilled = true
			}
		}
	}
	if spilled {
		g.overflow = append(g.overflow, e)
	}
}

// Query calls fn for every entity whose cells intersect box; duplicates are possible
func (g *SpatialGrid) Query(box vmath.AABB, fn func(core.Entity)) {
	x0, y0, x1, y1 := g.cellRange(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := &g.Cells[y*g.Width+x]
			for i := uint8(0); i < cell.Count; i++ {
				fn(cell.Entities[i])
			}
		}
	}
	for _, e := range g.overflow {
		fn(e)
	}
}

// Clear removes all entities from all cells
func (g *SpatialGrid) Clear() {
	for i := range g.Cells {
		g.Cells[i].Count = 0
	}
	g.overflow = g.overflow[:0]
}
