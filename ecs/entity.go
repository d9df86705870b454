package ecs

import "strconv"

// Entity is a handle packing a slot index in the low 32 bits and the slot's
// generation in the high 32. Zero is never a live entity, so a zero Entity
// means "none". Actors and gimmicks are identified by uint64(e).
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Slot is the storage index; destroyed slots are reused.
func (e Entity) Slot() uint32 { return uint32(e.id()) }

// Generation is bumped each time the slot is reused.
func (e Entity) Generation() uint32 { return uint32(e.generation()) }

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
