package bough

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// transformAnimatable groups the channels animators write. Each is double
// buffered and carries its own base value.
type transformAnimatable struct {
	scale       DoubleBuffered[mgl32.Vec3]
	orientation DoubleBuffered[mgl32.Quat]
	position    DoubleBuffered[mgl32.Vec3]
}

func (a *transformAnimatable) isClean() bool {
	return a.scale.IsClean() && a.orientation.IsClean() && a.position.IsClean()
}

// transformStatic groups the anchoring rules. They are written from outside
// the frame loop and are not double buffered.
type transformStatic struct {
	anchorPoint             mgl32.Vec3
	parentOrigin            mgl32.Vec3
	positionUsesAnchorPoint bool
}

var (
	defaultAnimatable = transformAnimatable{
		scale:       NewDoubleBuffered(unitScale),
		orientation: NewDoubleBuffered(mgl32.QuatIdent()),
		position:    NewDoubleBuffered(mgl32.Vec3{}),
	}
	defaultStatic = transformStatic{
		anchorPoint:             AnchorCenter,
		parentOrigin:            ParentOriginTopLeft,
		positionUsesAnchorPoint: true,
	}
)

// placement is the reorder bookkeeping for one slot.
type placement struct {
	scene uint32
	level uint32
}

// dirtyBothBuffers keeps a component flagged for two updates so that the
// outputs in both buffers are rewritten. Ageing shifts it right once per update.
const dirtyBothBuffers uint8 = 0b11

const defaultCapacity = 64

// TransformManager owns the packed world-transform state of every node in a
// scene graph. Storage is structure-of-arrays; external code addresses rows
// only through TransformIDs, so compaction and reordering stay invisible.
//
// TransformManager is not safe for concurrent use. The update stage writes
// buffer i while consumers may read buffer 1-i; see SceneBuffers.
type TransformManager struct {
	ids   idTable
	count uint32

	componentID  []TransformID
	parent       []TransformID
	animatable   []transformAnimatable
	static       []transformStatic
	size         []DoubleBuffered[mgl32.Vec3]
	inheritance  []InheritanceMode
	local        []DoubleBuffered[mgl32.Mat4]
	world        []DoubleBuffered[mgl32.Mat4]
	bounds       []DoubleBuffered[mgl32.Vec4]
	dirty        []uint8
	localChanged []bool
	placement    []placement

	childCount []uint32 // indexed by TransformID

	recomputed []bool      // per-update scratch
	order      []orderItem // reorder scratch

	reorder     bool
	checkCycles bool
	log         zerolog.Logger
}

// Option configures a TransformManager.
type Option func(*TransformManager)

// WithLogger sets the logger used for reorder and update diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(m *TransformManager) { m.log = l }
}

// WithCapacity preallocates storage for n components.
func WithCapacity(n int) Option {
	return func(m *TransformManager) { m.grow(n) }
}

// WithCycleChecks makes SetParent reject parent chains that would form a
// cycle. Without it only self-parenting is rejected at SetParent; reorder
// still panics on a cycle.
func WithCycleChecks(enabled bool) Option {
	return func(m *TransformManager) { m.checkCycles = enabled }
}

// NewTransformManager creates an empty manager.
func NewTransformManager(opts ...Option) *TransformManager {
	m := &TransformManager{log: zerolog.Nop()}
	m.ids = newIDTable(defaultCapacity)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TransformManager) grow(n int) {
	if n <= cap(m.componentID) {
		return
	}
	m.ids.grow(n)
	m.childCount = growSlice(m.childCount, n)
	m.componentID = growSlice(m.componentID, n)
	m.parent = growSlice(m.parent, n)
	m.animatable = growSlice(m.animatable, n)
	m.static = growSlice(m.static, n)
	m.size = growSlice(m.size, n)
	m.inheritance = growSlice(m.inheritance, n)
	m.local = growSlice(m.local, n)
	m.world = growSlice(m.world, n)
	m.bounds = growSlice(m.bounds, n)
	m.dirty = growSlice(m.dirty, n)
	m.localChanged = growSlice(m.localChanged, n)
	m.placement = growSlice(m.placement, n)
}

func growSlice[T any](s []T, n int) []T {
	out := make([]T, len(s), n)
	copy(out, s)
	return out
}

// Len returns the number of live components.
func (m *TransformManager) Len() int {
	return int(m.count)
}

// Contains reports whether id refers to a live component.
func (m *TransformManager) Contains(id TransformID) bool {
	return m.ids.contains(id)
}

// CreateTransform adds a component with default values and returns its id.
// The new component is a root until SetParent is called.
func (m *TransformManager) CreateTransform() TransformID {
	slot := m.count
	id := m.ids.add(slot)

	m.componentID = append(m.componentID, id)
	m.parent = append(m.parent, InvalidTransformID)
	m.animatable = append(m.animatable, defaultAnimatable)
	m.static = append(m.static, defaultStatic)
	m.size = append(m.size, DoubleBuffered[mgl32.Vec3]{})
	m.inheritance = append(m.inheritance, InheritAll)
	m.local = append(m.local, NewDoubleBuffered(mgl32.Ident4()))
	m.world = append(m.world, NewDoubleBuffered(mgl32.Ident4()))
	m.bounds = append(m.bounds, DoubleBuffered[mgl32.Vec4]{})
	m.dirty = append(m.dirty, dirtyBothBuffers)
	m.localChanged = append(m.localChanged, false)
	m.placement = append(m.placement, placement{})
	if int(id) < len(m.childCount) {
		m.childCount[id] = 0
	} else {
		m.childCount = append(m.childCount, 0)
	}

	m.count++
	m.reorder = true
	return id
}

// RemoveTransform destroys the component. The last slot is moved into the
// gap. Panics if id still has children: remove or reparent them first.
func (m *TransformManager) RemoveTransform(id TransformID) {
	slot := m.ids.lookup(id)
	if n := m.childCount[id]; n > 0 {
		panic(fmt.Sprintf("bough: removing transform %d that still has %d children", id, n))
	}
	if p := m.parent[slot]; p != InvalidTransformID {
		m.childCount[p]--
	}

	last := m.count - 1
	if slot != last {
		m.moveSlot(slot, last)
		m.ids.move(m.componentID[slot], slot)
	}
	m.truncate(last)
	m.ids.remove(id)

	m.count--
	m.reorder = true
}

func (m *TransformManager) moveSlot(dst, src uint32) {
	m.componentID[dst] = m.componentID[src]
	m.parent[dst] = m.parent[src]
	m.animatable[dst] = m.animatable[src]
	m.static[dst] = m.static[src]
	m.size[dst] = m.size[src]
	m.inheritance[dst] = m.inheritance[src]
	m.local[dst] = m.local[src]
	m.world[dst] = m.world[src]
	m.bounds[dst] = m.bounds[src]
	m.dirty[dst] = m.dirty[src]
	m.localChanged[dst] = m.localChanged[src]
	m.placement[dst] = m.placement[src]
}

func (m *TransformManager) truncate(n uint32) {
	m.componentID = m.componentID[:n]
	m.parent = m.parent[:n]
	m.animatable = m.animatable[:n]
	m.static = m.static[:n]
	m.size = m.size[:n]
	m.inheritance = m.inheritance[:n]
	m.local = m.local[:n]
	m.world = m.world[:n]
	m.bounds = m.bounds[:n]
	m.dirty = m.dirty[:n]
	m.localChanged = m.localChanged[:n]
	m.placement = m.placement[:n]
}

// SetParent attaches id under parentID, or detaches it when parentID is
// InvalidTransformID. Panics on self-parenting or a dead parent.
func (m *TransformManager) SetParent(id, parentID TransformID) {
	if id == parentID {
		panic(fmt.Sprintf("bough: transform %d cannot be its own parent", id))
	}
	slot := m.ids.lookup(id)
	if parentID != InvalidTransformID {
		m.ids.check(parentID)
		if m.checkCycles && m.isAncestor(id, parentID) {
			panic(fmt.Sprintf("bough: parenting %d under %d would create a cycle", id, parentID))
		}
	}
	old := m.parent[slot]
	if old == parentID {
		return
	}
	if old != InvalidTransformID {
		m.childCount[old]--
	}
	if parentID != InvalidTransformID {
		m.childCount[parentID]++
	}
	m.parent[slot] = parentID
	m.dirty[slot] = dirtyBothBuffers
	m.reorder = true
}

// isAncestor reports whether ancestor appears on the parent chain of id
// (id itself included).
func (m *TransformManager) isAncestor(ancestor, id TransformID) bool {
	for steps := uint32(0); id != InvalidTransformID; steps++ {
		if id == ancestor {
			return true
		}
		if steps > m.count {
			panic("bough: parent cycle detected")
		}
		id = m.parent[m.ids.lookup(id)]
	}
	return false
}

// Parent returns the parent of id, or InvalidTransformID for a root.
func (m *TransformManager) Parent(id TransformID) TransformID {
	return m.parent[m.ids.lookup(id)]
}

// Children returns the direct children of id in slot order. It scans every
// component.
func (m *TransformManager) Children(id TransformID) []TransformID {
	m.ids.check(id)
	var out []TransformID
	for i := uint32(0); i < m.count; i++ {
		if m.parent[i] == id {
			out = append(out, m.componentID[i])
		}
	}
	return out
}

// Each calls fn for every live component in slot order. After an Update the
// order is parent-before-child.
func (m *TransformManager) Each(fn func(id TransformID)) {
	for i := uint32(0); i < m.count; i++ {
		fn(m.componentID[i])
	}
}

// Placement returns the scene id and depth resolved for id by the most recent
// reorder. Components created or reparented since then report stale values
// until the next Update.
func (m *TransformManager) Placement(id TransformID) (scene, level uint32) {
	p := m.placement[m.ids.lookup(id)]
	return p.scene, p.level
}

// ReorderPending reports whether the next Update will reorder storage.
func (m *TransformManager) ReorderPending() bool {
	return m.reorder
}

// --- Inheritance ---

// SetInheritPosition toggles whether id composes its position from the parent.
func (m *TransformManager) SetInheritPosition(id TransformID, inherit bool) {
	m.setInheritance(id, InheritPosition, inherit)
}

// SetInheritScale toggles whether id composes its scale from the parent.
func (m *TransformManager) SetInheritScale(id TransformID, inherit bool) {
	m.setInheritance(id, InheritScale, inherit)
}

// SetInheritOrientation toggles whether id composes its orientation from the
// parent.
func (m *TransformManager) SetInheritOrientation(id TransformID, inherit bool) {
	m.setInheritance(id, InheritOrientation, inherit)
}

// SetInheritanceMode replaces the whole inheritance bitmask.
func (m *TransformManager) SetInheritanceMode(id TransformID, mode InheritanceMode) {
	slot := m.ids.lookup(id)
	m.inheritance[slot] = mode & InheritAll
	m.dirty[slot] = dirtyBothBuffers
}

// InheritanceMode returns the inheritance bitmask of id.
func (m *TransformManager) InheritanceMode(id TransformID) InheritanceMode {
	return m.inheritance[m.ids.lookup(id)]
}

func (m *TransformManager) setInheritance(id TransformID, bit InheritanceMode, inherit bool) {
	slot := m.ids.lookup(id)
	if inherit {
		m.inheritance[slot] |= bit
	} else {
		m.inheritance[slot] &^= bit
	}
	m.dirty[slot] = dirtyBothBuffers
}

// SetPositionUsesAnchorPoint controls whether the authored position places
// the anchor point (true) or the top-left corner (false).
func (m *TransformManager) SetPositionUsesAnchorPoint(id TransformID, value bool) {
	slot := m.ids.lookup(id)
	m.static[slot].positionUsesAnchorPoint = value
	m.dirty[slot] = dirtyBothBuffers
}

// PositionUsesAnchorPoint reports the flag set by SetPositionUsesAnchorPoint.
func (m *TransformManager) PositionUsesAnchorPoint(id TransformID) bool {
	return m.static[m.ids.lookup(id)].positionUsesAnchorPoint
}

// --- Outputs ---

// WorldMatrix returns the world matrix of id held in buffer i.
func (m *TransformManager) WorldMatrix(id TransformID, i BufferIndex) mgl32.Mat4 {
	return m.world[m.ids.lookup(id)].Get(i)
}

// WorldMatrixPtr returns a writable pointer to the world matrix of id in
// buffer i. The next Update overwrites it if the node is recomputed.
func (m *TransformManager) WorldMatrixPtr(id TransformID, i BufferIndex) *mgl32.Mat4 {
	slot := m.ids.lookup(id)
	m.world[slot].Mark(i)
	return m.world[slot].Ptr(i)
}

// WorldMatrixAndSize returns the world matrix and size of id in buffer i.
func (m *TransformManager) WorldMatrixAndSize(id TransformID, i BufferIndex) (mgl32.Mat4, mgl32.Vec3) {
	slot := m.ids.lookup(id)
	return m.world[slot].Get(i), m.size[slot].Get(i)
}

// LocalMatrix returns the local (parent-space) matrix of id in buffer i.
func (m *TransformManager) LocalMatrix(id TransformID, i BufferIndex) mgl32.Mat4 {
	return m.local[m.ids.lookup(id)].Get(i)
}

// IsLocalMatrixDirty reports whether the local matrix of id changed in the
// most recent Update compared with the previous frame.
func (m *TransformManager) IsLocalMatrixDirty(id TransformID) bool {
	return m.localChanged[m.ids.lookup(id)]
}

// BoundingSphere returns the world bounding sphere of id in buffer i: xyz is
// the centre and w the radius.
func (m *TransformManager) BoundingSphere(id TransformID, i BufferIndex) mgl32.Vec4 {
	return m.bounds[m.ids.lookup(id)].Get(i)
}

// WorldPosition returns the translation of the world matrix of id.
func (m *TransformManager) WorldPosition(id TransformID, i BufferIndex) mgl32.Vec3 {
	w := m.WorldMatrix(id, i)
	return mgl32.Vec3{w[12], w[13], w[14]}
}

// WorldScale returns the scale decomposed from the world matrix of id.
func (m *TransformManager) WorldScale(id TransformID, i BufferIndex) mgl32.Vec3 {
	_, _, s := decomposeTransform(m.WorldMatrix(id, i))
	return s
}

// WorldOrientation returns the rotation decomposed from the world matrix of id.
func (m *TransformManager) WorldOrientation(id TransformID, i BufferIndex) mgl32.Quat {
	_, q, _ := decomposeTransform(m.WorldMatrix(id, i))
	return q
}

// ResetToBaseValue restores every animatable channel's base value into
// buffer i. Call once per frame before animators run.
func (m *TransformManager) ResetToBaseValue(i BufferIndex) {
	for slot := uint32(0); slot < m.count; slot++ {
		a := &m.animatable[slot]
		a.scale.ResetToBase(i)
		a.orientation.ResetToBase(i)
		a.position.ResetToBase(i)
		m.size[slot].ResetToBase(i)
	}
}
