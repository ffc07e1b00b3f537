package entity

import "github.com/go-gl/mathgl/mgl64"

// Location represents a location of an entity.
type Location struct {
	// Position is the bottom centre of the entity's bounding box.
	Position mgl64.Vec3
	// LastPosition is the position that the entity was in right before Position was updated.
	LastPosition mgl64.Vec3
}

// Delta returns the distance moved by the last position update.
func (l Location) Delta() mgl64.Vec3 {
	return l.Position.Sub(l.LastPosition)
}
