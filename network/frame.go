package network

// Frame is one spectator update, a flat copy of the visible world
type Frame struct {
	Tick  uint64     `json:"tick"`
	RunID string     `json:"run_id"`
	Money int64      `json:"money"`
	Quake QuakeFrame `json:"quake"`

	Buildings []BuildingFrame `json:"buildings"`
	Plates    []PlateFrame    `json:"plates"`
	Joints    []JointFrame    `json:"joints"`
}

type QuakeFrame struct {
	Active bool    `json:"active"`
	Count  int     `json:"count"`
	NextIn float64 `json:"next_in_s"`
}

type BuildingFrame struct {
	Pos     [2]float64  `json:"pos"`
	Angle   float64     `json:"angle"`
	Size    [2]float64  `json:"size"`
	Chimney *[2]float64 `json:"chimney,omitempty"`
}

type PlateFrame struct {
	Pos [2]float64 `json:"pos"`
}

// JointFrame carries world-space endpoints
type JointFrame struct {
	A [2]float64 `json:"a"`
	B [2]float64 `json:"b"`
}

// Hello is served at / so clients can discover the feed
type Hello struct {
	Service string `json:"service"`
	RunID   string `json:"run_id"`
	Feed    string `json:"feed"`
	Clients int    `json:"clients"`
}
