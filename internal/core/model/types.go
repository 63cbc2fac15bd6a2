package model

import "math"

// Vector3 is a world-space position.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Length returns the euclidean norm of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the euclidean distance between v and other.
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Sample is one timestamped position of a named entity.
// ElapsedTime is seconds since the owning recording session started.
type Sample struct {
	Position    Vector3 `json:"position"`
	ElapsedTime float64 `json:"elapsed_time"`
	Name        string  `json:"name"`
}
