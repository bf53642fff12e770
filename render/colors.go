package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbSky        = tcell.NewRGBColor(30, 34, 52)    // Slightly lifted sky
	RgbGround     = tcell.NewRGBColor(92, 64, 40)    // Brown
	RgbPlate      = tcell.NewRGBColor(120, 120, 130) // Gray
	RgbPlateHit   = tcell.NewRGBColor(200, 150, 90)  // Warm gray while shaking
	RgbChimney    = tcell.NewRGBColor(150, 60, 50)   // Brick
	RgbInhabitant = tcell.NewRGBColor(255, 230, 180) // Skin
	RgbJoint      = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbRubberBand = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbMoney      = tcell.NewRGBColor(80, 220, 100)  // Banknote green

	RgbPreviewOK      = tcell.NewRGBColor(0, 200, 0)   // Normal green
	RgbPreviewBlocked = tcell.NewRGBColor(255, 80, 80) // Normal red
	RgbSupport        = tcell.NewRGBColor(50, 255, 50) // Bright green

	RgbCursorText = tcell.NewRGBColor(255, 255, 255) // White
	RgbCursorPoor = tcell.NewRGBColor(255, 0, 0)     // Error red

	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbModeBuildBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbModeJointBg = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbMoneyBg     = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbQuakeBg     = tcell.NewRGBColor(200, 50, 50)   // Red while shaking
	RgbQuakeWaitBg = tcell.NewRGBColor(255, 192, 203) // Pink countdown
)

// buildingPalette cycles by entity index so neighbours differ
var buildingPalette = []tcell.Color{
	tcell.NewRGBColor(100, 150, 255),
	tcell.NewRGBColor(230, 200, 120),
	tcell.NewRGBColor(170, 120, 210),
	tcell.NewRGBColor(110, 200, 190),
	tcell.NewRGBColor(220, 140, 110),
	tcell.NewRGBColor(180, 190, 200),
}

// BuildingColor returns the palette color for a building slot
func BuildingColor(index uint32) tcell.Color {
	return buildingPalette[int(index)%len(buildingPalette)]
}
