package bough

import "fmt"

// idTable maps stable TransformIDs to their current slot in the packed
// component arrays. Freed ids go on a stack and are handed out again only
// after remove has completed.
type idTable struct {
	slots []uint32
	live  []bool
	free  []TransformID
}

func newIDTable(capacity int) idTable {
	return idTable{
		slots: make([]uint32, 0, capacity),
		live:  make([]bool, 0, capacity),
	}
}

// grow reserves room for n ids.
func (t *idTable) grow(n int) {
	if n <= cap(t.slots) {
		return
	}
	t.slots = growSlice(t.slots, n)
	t.live = growSlice(t.live, n)
}

// add allocates an id pointing at slot.
func (t *idTable) add(slot uint32) TransformID {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = slot
		t.live[id] = true
		return id
	}
	id := TransformID(len(t.slots))
	if id == InvalidTransformID {
		panic("bough: transform id space exhausted")
	}
	t.slots = append(t.slots, slot)
	t.live = append(t.live, true)
	return id
}

// remove releases id for reuse.
func (t *idTable) remove(id TransformID) {
	t.check(id)
	t.live[id] = false
	t.free = append(t.free, id)
}

// lookup returns the slot currently holding id. Panics on a freed or unknown id.
func (t *idTable) lookup(id TransformID) uint32 {
	t.check(id)
	return t.slots[id]
}

// move records that id now lives in slot.
func (t *idTable) move(id TransformID, slot uint32) {
	t.slots[id] = slot
}

func (t *idTable) contains(id TransformID) bool {
	return int(id) < len(t.live) && t.live[id]
}

func (t *idTable) check(id TransformID) {
	if !t.contains(id) {
		panic(fmt.Sprintf("bough: invalid transform id %d", id))
	}
}
