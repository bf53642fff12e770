package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/vmath"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to initialize screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestRenderFrame_StatusBar(t *testing.T) {
	screen := newScreen(t, 100, 24)
	world := engine.NewTestWorld(1)
	world.Resources.Camera.Fit(100, 24)

	r := NewRenderer(screen)
	r.RenderFrame(world, Status{Muted: true, Spectators: 2})

	bar := row(screen, 0)
	for _, want := range []string{"$10000", "Build Tool (B)", "Next quake", "[muted]", "2 watching"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar %q missing %q", bar, want)
		}
	}

	world.Resources.Tool.Select(component.ToolJoint)
	r.RenderFrame(world, Status{})
	if bar := row(screen, 0); !strings.Contains(bar, "Support Joint Tool (J)") || strings.Contains(bar, "muted") {
		t.Errorf("joint status bar = %q", bar)
	}
}

func TestRenderFrame_BuildingCells(t *testing.T) {
	screen := newScreen(t, 80, 24)
	world := engine.NewTestWorld(1)
	cam := world.Resources.Camera
	cam.Fit(80, 24)

	e := world.SpawnBuildingAt(vmath.V(0, 30), vmath.V(100, 60), 0)
	NewRenderer(screen).RenderFrame(world, Status{})

	col, rw := cam.WorldToScreen(vmath.V(0, 30))
	ch, _, style, _ := screen.GetContent(col, rw)
	if ch != '█' {
		t.Fatalf("building center cell = %q", ch)
	}
	if fg, _, _ := style.Decompose(); fg != BuildingColor(e.Index()) {
		t.Errorf("building color = %v", fg)
	}

	// Well outside the footprint
	col, rw = cam.WorldToScreen(vmath.V(200, 30))
	if ch, _, _, _ := screen.GetContent(col, rw); ch == '█' {
		t.Error("building drawn outside its box")
	}
}

func TestRenderFrame_PreviewColors(t *testing.T) {
	screen := newScreen(t, 80, 24)
	world := engine.NewTestWorld(1)
	cam := world.Resources.Camera
	cam.Fit(80, 24)

	e := world.CreateEntity()
	world.Components.Pose.Set(e, component.Pose{Position: vmath.V(0, 100)})
	world.Components.Preview.Set(e, component.PreviewBuilding{
		Visible:       true,
		BottomSupport: true,
		Size:          vmath.V(100, 60),
	})

	r := NewRenderer(screen)
	r.RenderFrame(world, Status{})
	col, rw := cam.WorldToScreen(vmath.V(0, 100))
	ch, _, style, _ := screen.GetContent(col, rw)
	if fg, _, _ := style.Decompose(); ch != '░' || fg != RgbPreviewOK {
		t.Errorf("placeable preview = %q %v", ch, fg)
	}

	p, _ := world.Components.Preview.Get(e)
	p.Blocked = true
	world.Components.Preview.Set(e, p)
	r.RenderFrame(world, Status{})
	_, _, style, _ = screen.GetContent(col, rw)
	if fg, _, _ := style.Decompose(); fg != RgbPreviewBlocked {
		t.Errorf("blocked preview color = %v", fg)
	}

	p.Visible = false
	world.Components.Preview.Set(e, p)
	r.RenderFrame(world, Status{})
	if ch, _, _, _ := screen.GetContent(col, rw); ch == '░' {
		t.Error("hidden preview drawn")
	}
}

func TestRenderFrame_CursorText(t *testing.T) {
	screen := newScreen(t, 80, 24)
	world := engine.NewTestWorld(1)
	world.Resources.Camera.Fit(80, 24)

	res := world.Resources
	res.Input.MouseX, res.Input.MouseY = 10, 12
	res.Cursor.Valid = true
	res.Cursor.Text = "Requires 500$"

	NewRenderer(screen).RenderFrame(world, Status{})
	if got := row(screen, 12); !strings.Contains(got, "Requires 500$") {
		t.Errorf("row 12 = %q", got)
	}
	ch, _, style, _ := screen.GetContent(12, 12)
	if fg, _, _ := style.Decompose(); ch != 'R' || fg != RgbCursorPoor {
		t.Errorf("label start = %q %v", ch, fg)
	}
}

func TestRenderFrame_JointLine(t *testing.T) {
	screen := newScreen(t, 80, 24)
	world := engine.NewTestWorld(1)
	cam := world.Resources.Camera
	cam.Fit(80, 24)

	a := world.SpawnBuildingAt(vmath.V(-100, 30), vmath.V(60, 60), 0)
	b := world.SpawnBuildingAt(vmath.V(100, 30), vmath.V(60, 60), 0)
	j := world.CreateEntity()
	world.Components.Joint.Set(j, component.BuildingJoint{A: a, B: b, RestLength: 200})

	NewRenderer(screen).RenderFrame(world, Status{})
	col, rw := cam.WorldToScreen(vmath.V(0, 30))
	if ch, _, _, _ := screen.GetContent(col, rw); ch != '•' {
		t.Errorf("joint midpoint cell = %q", ch)
	}
}

func TestQuakeLabel(t *testing.T) {
	world := engine.NewTestWorld(1)
	q := world.Resources.Quake
	if got := QuakeLabel(q); got != "Next quake 10.0s" {
		t.Errorf("idle label = %q", got)
	}
	q.Count = 3
	q.Stop.Unpause()
	if got := QuakeLabel(q); got != "QUAKE #3 3.0s" {
		t.Errorf("active label = %q", got)
	}
}
