package tracking

import (
	"sync"

	"github.com/penwyp/go-path-tracer/internal/core/model"
)

// Actor is a named entity whose position is set from outside.
type Actor struct {
	mu       sync.RWMutex
	name     string
	position model.Vector3
}

func NewActor(name string) *Actor {
	return &Actor{name: name}
}

func (a *Actor) SetPosition(p model.Vector3) {
	a.mu.Lock()
	a.position = p
	a.mu.Unlock()
}

func (a *Actor) CurrentPosition() model.Vector3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

func (a *Actor) DisplayName() string { return a.name }

// discardRenderer stands in for a world that draws nothing.
type discardRenderer struct{}

func (discardRenderer) DrawPoint(model.Vector3, float64, model.Color)                  {}
func (discardRenderer) DrawSegment(model.Vector3, model.Vector3, model.Color, float64) {}
