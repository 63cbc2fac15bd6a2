package model

// Color is an 8-bit RGB colour used for debug drawing.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	ColorRed  = Color{R: 255}
	ColorBlue = Color{B: 255}
)

// Segment connects two consecutive in-window samples of a path.
type Segment struct {
	From Vector3 `json:"from"`
	To   Vector3 `json:"to"`
}
