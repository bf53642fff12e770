package core

// Entity is a generation-tagged handle: low 32 bits index the registry slot,
// high 32 bits carry the slot generation at creation
// Zero is never a live entity
type Entity uint64

// NewEntity packs a slot index and generation into a handle
func NewEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the registry slot
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns the slot generation the handle was minted with
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}
