package entity

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Tracker keeps track of the entities in a world and answers which of them act as hard colliders for a moving
// entity.
type Tracker struct {
	entities map[uint64]*Entity
	deadlock.RWMutex
}

// NewTracker ...
func NewTracker() *Tracker {
	return &Tracker{entities: make(map[uint64]*Entity)}
}

// Add adds an entity to the tracker, replacing any entity with the same runtime ID.
func (t *Tracker) Add(e *Entity) {
	t.Lock()
	defer t.Unlock()
	t.entities[e.RuntimeID()] = e
}

// Remove removes an entity from the tracker. Any riding relations it had are dissolved.
func (t *Tracker) Remove(id uint64) {
	t.Lock()
	defer t.Unlock()

	e, ok := t.entities[id]
	if !ok {
		return
	}
	if vehicle, riding := e.Vehicle(); riding {
		if v, ok := t.entities[vehicle]; ok {
			v.removePassenger(id)
		}
	}
	for _, p := range e.Passengers() {
		if passenger, ok := t.entities[p]; ok {
			passenger.setVehicle(0, false)
		}
	}
	for _, other := range t.entities {
		if holder, leashed := other.LeashHolder(); leashed && holder == id {
			other.setLeashHolder(0, false)
		}
	}
	delete(t.entities, id)
}

// Entity looks up an entity by its runtime ID.
func (t *Tracker) Entity(id uint64) (*Entity, bool) {
	t.RLock()
	defer t.RUnlock()
	e, ok := t.entities[id]
	return e, ok
}

// Len returns the number of tracked entities.
func (t *Tracker) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.entities)
}

// Mount makes the passenger ride the vehicle.
func (t *Tracker) Mount(passenger, vehicle uint64) error {
	t.Lock()
	defer t.Unlock()

	p, ok := t.entities[passenger]
	if !ok {
		return oerror.New("mount: passenger %d not tracked", passenger)
	}
	v, ok := t.entities[vehicle]
	if !ok {
		return oerror.New("mount: vehicle %d not tracked", vehicle)
	}
	if passenger == vehicle || t.rootLocked(vehicle) == passenger {
		return oerror.New("mount: %d cannot ride %d", passenger, vehicle)
	}
	if old, riding := p.Vehicle(); riding {
		if oldVehicle, ok := t.entities[old]; ok {
			oldVehicle.removePassenger(passenger)
		}
	}
	p.setVehicle(vehicle, true)
	v.addPassenger(passenger)
	return nil
}

// Dismount stops the passenger from riding its vehicle.
func (t *Tracker) Dismount(passenger uint64) {
	t.Lock()
	defer t.Unlock()

	p, ok := t.entities[passenger]
	if !ok {
		return
	}
	if vehicle, riding := p.Vehicle(); riding {
		if v, ok := t.entities[vehicle]; ok {
			v.removePassenger(passenger)
		}
	}
	p.setVehicle(0, false)
}

// Leash ties the entity to the leash holder passed.
func (t *Tracker) Leash(id, holder uint64) error {
	t.Lock()
	defer t.Unlock()

	e, ok := t.entities[id]
	if !ok {
		return oerror.New("leash: entity %d not tracked", id)
	}
	if _, ok := t.entities[holder]; !ok {
		return oerror.New("leash: holder %d not tracked", holder)
	}
	if id == holder || !e.Kind().Leashable {
		return oerror.New("leash: %d cannot be leashed to %d", id, holder)
	}
	e.setLeashHolder(holder, true)
	return nil
}

// Unleash removes the leash of the entity, if any.
func (t *Tracker) Unleash(id uint64) {
	t.Lock()
	defer t.Unlock()

	if e, ok := t.entities[id]; ok {
		e.setLeashHolder(0, false)
	}
}

// HardCollidersIn returns the bounding boxes of every hard collider intersecting bb. The entity self, its
// vehicle and anything else riding the same vehicle are excluded.
func (t *Tracker) HardCollidersIn(bb cube.BBox, self uint64) []cube.BBox {
	t.RLock()
	defer t.RUnlock()

	selfRoot := t.rootLocked(self)
	var boxes []cube.BBox
	for id, e := range t.entities {
		if id == self || !e.Kind().HardCollider {
			continue
		}
		if t.rootLocked(id) == selfRoot {
			continue
		}
		if box := e.BBox(); game.Intersects(box, bb) {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// rootLocked returns the runtime ID of the lowest vehicle in the riding chain of id, or id itself. The caller
// must hold the lock.
func (t *Tracker) rootLocked(id uint64) uint64 {
	for range len(t.entities) {
		e, ok := t.entities[id]
		if !ok {
			return id
		}
		vehicle, riding := e.Vehicle()
		if !riding {
			return id
		}
		id = vehicle
	}
	return id
}
