// Package render draws the world onto a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/vmath"
)

// Status carries the front end state that lives outside the world
type Status struct {
	Muted      bool
	Spectators int
}

// Renderer draws one frame per call; it only reads the world
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderFrame draws world layers back to front, then the HUD, and shows the screen
func (r *Renderer) RenderFrame(w *engine.World, status Status) {
	s := r.screen
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	s.SetStyle(defaultStyle)
	s.Clear()

	r.drawGround(w, defaultStyle)
	r.drawPlates(w, defaultStyle)
	r.drawBuildings(w, defaultStyle)
	r.drawJoints(w, defaultStyle)
	r.drawPreview(w, defaultStyle)
	r.drawRubberBand(w, defaultStyle)
	r.drawMoney(w, defaultStyle)
	r.drawCursorText(w, defaultStyle)
	r.drawStatusBar(w, status, defaultStyle)

	s.Show()
}

func (r *Renderer) drawGround(w *engine.World, base tcell.Style) {
	cam := w.Resources.Camera
	style := base.Foreground(RgbGround)
	for _, e := range w.Components.Ground.All() {
		g, _ := w.Components.Ground.Get(e)
		pose, ok := w.Components.Pose.Get(e)
		if !ok {
			continue
		}
		fillBox(r.screen, cam, vmath.NewOBB(pose.Position, g.Size, pose.Angle), '▒', style)
	}
}

func (r *Renderer) drawPlates(w *engine.World, base tcell.Style) {
	cam := w.Resources.Camera
	color := RgbPlate
	if w.Resources.Quake.Active() {
		color = RgbPlateHit
	}
	style := base.Foreground(color)
	for _, e := range w.Components.Plate.All() {
		p, _ := w.Components.Plate.Get(e)
		pose, ok := w.Components.Pose.Get(e)
		if !ok {
			continue
		}
		fillBox(r.screen, cam, vmath.NewOBB(pose.Position, p.Size, pose.Angle), '▓', style)
	}
}

// drawBuildings draws bodies, chimneys and inhabitants
func (r *Renderer) drawBuildings(w *engine.World, base tcell.Style) {
	cam := w.Resources.Camera
	chimneyStyle := base.Foreground(RgbChimney)
	inhabitantStyle := base.Foreground(RgbInhabitant)

	for _, e := range w.Components.Building.All() {
		b, _ := w.Components.Building.Get(e)
		pose, ok := w.Components.Pose.Get(e)
		if !ok {
			continue
		}
		fillBox(r.screen, cam, b.Box(pose), '█', base.Foreground(BuildingColor(e.Index())))
		if b.Variant.HasChimney() {
			fillBox(r.screen, cam, component.ChimneyBox(pose, b.Variant.Offset), '█', chimneyStyle)
		}

		for _, ie := range b.Inhabitants {
			inh, ok := w.Components.Inhabitant.Get(ie)
			if !ok {
				continue
			}
			drawPoint(r.screen, cam, pose.ToWorld(inh.Local(b.Size)), '☺', inhabitantStyle.Background(BuildingColor(e.Index())))
		}
	}
}

func (r *Renderer) drawJoints(w *engine.World, base tcell.Style) {
	cam := w.Resources.Camera
	style := base.Foreground(RgbJoint)
	for _, e := range w.Components.Joint.All() {
		j, _ := w.Components.Joint.Get(e)
		pa, okA := w.Components.Pose.Get(j.A)
		pb, okB := w.Components.Pose.Get(j.B)
		if !okA || !okB {
			continue
		}
		drawLine(r.screen, cam, pa.ToWorld(j.AnchorA), pb.ToWorld(j.AnchorB), '•', style)
	}
}

// drawPreview draws the ghost building and, when supported, its support strip
func (r *Renderer) drawPreview(w *engine.World, base tcell.Style) {
	e, p, ok := w.Components.Preview.First()
	if !ok || !p.Visible {
		return
	}
	pose, ok := w.Components.Pose.Get(e)
	if !ok {
		return
	}
	cam := w.Resources.Camera

	color := RgbPreviewOK
	if !p.CanPlace() {
		color = RgbPreviewBlocked
	}
	style := base.Foreground(color)
	for _, box := range p.Colliders(pose) {
		fillBox(r.screen, cam, box, '░', style)
	}
	if p.BottomSupport {
		a := pose.ToWorld(vmath.V(-p.Size.X/2, -p.Size.Y/2))
		b := pose.ToWorld(vmath.V(p.Size.X/2, -p.Size.Y/2))
		drawLine(r.screen, cam, a, b, '▔', base.Foreground(RgbSupport))
	}
}

func (r *Renderer) drawRubberBand(w *engine.World, base tcell.Style) {
	res := w.Resources
	tool := res.Tool
	if tool.Selected != component.ToolJoint || !tool.Joint.Armed() || !res.Cursor.Valid {
		return
	}
	pose, ok := w.Components.Pose.Get(tool.Joint.Building)
	if !ok {
		return
	}
	drawLine(r.screen, res.Camera, pose.ToWorld(tool.Joint.Anchor), res.Cursor.World, '·', base.Foreground(RgbRubberBand))
}

func (r *Renderer) drawMoney(w *engine.World, base tcell.Style) {
	cam := w.Resources.Camera
	style := base.Foreground(RgbMoney).Bold(true)
	for _, e := range w.Components.Money.All() {
		m, _ := w.Components.Money.Get(e)
		drawPoint(r.screen, cam, m.Position, '$', style)
	}
}

// drawCursorText writes the cost label to the right of the pointer
func (r *Renderer) drawCursorText(w *engine.World, base tcell.Style) {
	res := w.Resources
	if !res.Cursor.Valid || res.Cursor.Text == "" {
		return
	}
	color := RgbCursorText
	if res.Cursor.Text[0] == 'R' {
		// "Requires ..."
		color = RgbCursorPoor
	}
	drawText(r.screen, res.Input.MouseX+2, res.Input.MouseY, res.Cursor.Text, base.Foreground(color))
}

// drawStatusBar draws the top row: money, tool, quake clock, audio state
func (r *Renderer) drawStatusBar(w *engine.World, status Status, base tcell.Style) {
	res := w.Resources
	width, _ := r.screen.Size()
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, base)
	}

	x := drawText(r.screen, 0, 0, fmt.Sprintf(" $%d ", res.Player.Money),
		base.Foreground(RgbStatusText).Background(RgbMoneyBg))
	x++

	toolBg := RgbModeBuildBg
	if res.Tool.Selected == component.ToolJoint {
		toolBg = RgbModeJointBg
	}
	x = drawText(r.screen, x, 0, " "+ToolLabel(res.Tool.Selected)+" ",
		base.Foreground(RgbStatusText).Background(toolBg))
	x++

	quakeBg := RgbQuakeWaitBg
	if res.Quake.Active() {
		quakeBg = RgbQuakeBg
	}
	x = drawText(r.screen, x, 0, " "+QuakeLabel(res.Quake)+" ",
		base.Foreground(RgbStatusText).Background(quakeBg))
	x++

	if status.Muted {
		x = drawText(r.screen, x, 0, "[muted] ", base.Foreground(RgbStatusBar))
	}
	if status.Spectators > 0 {
		drawText(r.screen, x, 0, fmt.Sprintf("%d watching ", status.Spectators), base.Foreground(RgbStatusBar))
	}
}

// ToolLabel is the status bar name of a tool with its key
func ToolLabel(t component.Tool) string {
	if t == component.ToolJoint {
		return "Support Joint Tool (J)"
	}
	return "Build Tool (B)"
}

// QuakeLabel describes the current quake or the countdown to the next one
func QuakeLabel(q *engine.EarthquakeResource) string {
	if q.Active() {
		return fmt.Sprintf("QUAKE #%d %.1fs", q.Count, q.Stop.Remaining().Seconds())
	}
	return fmt.Sprintf("Next quake %.1fs", q.Next.Remaining().Seconds())
}
