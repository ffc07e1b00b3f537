package entity

import (
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
)

// Rideable is implemented by entities that can carry passengers.
type Rideable interface {
	// Passengers returns the runtime IDs of the entities riding this one.
	Passengers() []uint64
}

// Leashable is implemented by entities that can be tied to a leash holder.
type Leashable interface {
	// LeashHolder returns the runtime ID of the entity holding the leash.
	LeashHolder() (uint64, bool)
}

// Entity is an entity tracked for collisions between actors.
type Entity struct {
	// mu protects all the following fields.
	mu sync.Mutex
	// runtimeID uniquely identifies the entity within a Tracker.
	runtimeID uint64
	// kind holds the dimensions and collision properties of the entity.
	kind Kind
	// location is the current and previous position of the entity.
	location Location
	// vehicle is the runtime ID of the entity being ridden, if riding is true.
	vehicle uint64
	riding  bool
	// passengers are the runtime IDs of the entities riding this entity.
	passengers []uint64
	// leashHolder is the runtime ID of the entity holding the leash, if leashed is true.
	leashHolder uint64
	leashed     bool
}

// NewEntity creates a new entity of the kind passed at the position passed.
func NewEntity(runtimeID uint64, kind Kind, pos mgl64.Vec3) *Entity {
	return &Entity{
		runtimeID: runtimeID,
		kind:      kind,
		location:  Location{Position: pos, LastPosition: pos},
	}
}

// RuntimeID returns the runtime ID of the entity.
func (e *Entity) RuntimeID() uint64 {
	return e.runtimeID
}

// Kind returns the kind of the entity.
func (e *Entity) Kind() Kind {
	return e.kind
}

// Position returns the position of the entity.
func (e *Entity) Position() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location.Position
}

// Location returns the current and previous position of the entity.
func (e *Entity) Location() Location {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location
}

// Move moves the entity to the provided position.
func (e *Entity) Move(pos mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.location.LastPosition = e.location.Position
	e.location.Position = pos
}

// BBox returns the world-space bounding box of the entity.
func (e *Entity) BBox() cube.BBox {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.BoxFromDimensions(e.location.Position, e.kind.Width, e.kind.Height)
}

// Vehicle returns the runtime ID of the entity this entity is riding.
func (e *Entity) Vehicle() (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vehicle, e.riding
}

// Passengers ...
func (e *Entity) Passengers() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.passengers)
}

// LeashHolder returns the runtime ID of the entity holding the leash of this entity.
func (e *Entity) LeashHolder() (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leashHolder, e.leashed
}

func (e *Entity) setLeashHolder(id uint64, leashed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.leashHolder, e.leashed = id, leashed
}

func (e *Entity) setVehicle(id uint64, riding bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vehicle, e.riding = id, riding
}

func (e *Entity) addPassenger(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !slices.Contains(e.passengers, id) {
		e.passengers = append(e.passengers, id)
	}
}

func (e *Entity) removePassenger(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passengers = slices.DeleteFunc(e.passengers, func(p uint64) bool { return p == id })
}
