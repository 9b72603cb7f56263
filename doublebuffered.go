package bough

// BufferIndex selects one of the two copies held by a DoubleBuffered value.
// The update stage writes one index while consumers read the other.
type BufferIndex uint8

// Other returns the opposite buffer index.
func (i BufferIndex) Other() BufferIndex {
	return 1 - i
}

// bufferState tracks how far a change has propagated across both buffers.
//
//	clean -> set (Set/Bake) -> copied (one CopyPrevious/ResetToBase) -> clean
type bufferState uint8

const (
	stateClean bufferState = iota
	stateSet
	stateCopied
)

// DoubleBuffered holds two copies of a value, one per buffer index, plus the
// base value animations are reset to at the start of each frame.
//
// There is no implicit current buffer: every accessor takes the index
// explicitly. The zero value holds two zero values and is clean.
type DoubleBuffered[T comparable] struct {
	values [2]T
	base   T
	state  bufferState
	setAt  BufferIndex
}

// NewDoubleBuffered returns a value with both buffers and the base set to v.
func NewDoubleBuffered[T comparable](v T) DoubleBuffered[T] {
	return DoubleBuffered[T]{values: [2]T{v, v}, base: v}
}

// SetInitial writes v to both buffers and the base and marks the value clean.
func (d *DoubleBuffered[T]) SetInitial(v T) {
	d.values[0] = v
	d.values[1] = v
	d.base = v
	d.state = stateClean
}

// Get returns the value held in buffer i.
func (d *DoubleBuffered[T]) Get(i BufferIndex) T {
	return d.values[i]
}

// Ptr returns a pointer to the value held in buffer i. Writes through it are
// not tracked; call Mark afterwards.
func (d *DoubleBuffered[T]) Ptr(i BufferIndex) *T {
	return &d.values[i]
}

// Base returns the base value.
func (d *DoubleBuffered[T]) Base() T {
	return d.base
}

// Set writes v into buffer i for the current frame only. It reports whether
// the stored value changed; an unchanged write leaves the state untouched.
func (d *DoubleBuffered[T]) Set(i BufferIndex, v T) bool {
	if d.values[i] == v {
		return false
	}
	d.values[i] = v
	d.Mark(i)
	return true
}

// Put writes v into buffer i and marks it, even when the stored value is
// already v. Computed outputs use it so that the buffer written last is always
// the one CopyPrevious propagates.
func (d *DoubleBuffered[T]) Put(i BufferIndex, v T) {
	d.values[i] = v
	d.Mark(i)
}

// SetBase replaces the base value. Neither buffer nor the state is touched.
func (d *DoubleBuffered[T]) SetBase(v T) {
	d.base = v
}

// Bake writes v into buffer i and into the base, so the value survives the
// next ResetToBase. The other buffer is not written.
func (d *DoubleBuffered[T]) Bake(i BufferIndex, v T) {
	d.values[i] = v
	d.base = v
	d.Mark(i)
}

// Mark flags buffer i as written this frame.
func (d *DoubleBuffered[T]) Mark(i BufferIndex) {
	d.state = stateSet
	d.setAt = i
}

// CopyPrevious brings buffer i up to date when the value was written into
// the other buffer during the previous frame. Otherwise it only ages the state.
func (d *DoubleBuffered[T]) CopyPrevious(i BufferIndex) {
	switch d.state {
	case stateSet:
		if d.setAt != i {
			d.values[i] = d.values[i.Other()]
			d.state = stateCopied
		}
	case stateCopied:
		d.state = stateClean
	}
}

// ResetToBase overwrites buffer i with the base value, discarding transient
// writes. Clean values are skipped.
func (d *DoubleBuffered[T]) ResetToBase(i BufferIndex) {
	switch d.state {
	case stateClean:
		return
	case stateSet:
		// A write made into i itself this frame is discarded as well.
		d.values[i] = d.base
		d.state = stateCopied
	case stateCopied:
		d.values[i] = d.base
		d.state = stateClean
	}
}

// IsClean reports whether both buffers hold the same, settled value.
func (d *DoubleBuffered[T]) IsClean() bool {
	return d.state == stateClean
}
