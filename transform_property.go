package bough

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// vector3Channel returns the double-buffered storage behind an animatable
// property, or nil for a static one.
func (m *TransformManager) vector3Channel(slot uint32, p TransformProperty) *DoubleBuffered[mgl32.Vec3] {
	switch p {
	case PropertyPosition:
		return &m.animatable[slot].position
	case PropertyScale:
		return &m.animatable[slot].scale
	case PropertySize:
		return &m.size[slot]
	case PropertyAnchorPoint, PropertyParentOrigin:
		return nil
	}
	panic(fmt.Sprintf("bough: unknown transform property %d", p))
}

func (m *TransformManager) staticVector3(slot uint32, p TransformProperty) *mgl32.Vec3 {
	if p == PropertyAnchorPoint {
		return &m.static[slot].anchorPoint
	}
	return &m.static[slot].parentOrigin
}

// Vector3 returns the value of property p for id in buffer i. Static
// properties have a single value regardless of i.
func (m *TransformManager) Vector3(id TransformID, p TransformProperty, i BufferIndex) mgl32.Vec3 {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		return ch.Get(i)
	}
	return *m.staticVector3(slot, p)
}

// BaseVector3 returns the base value of property p, the value restored by
// ResetToBaseValue.
func (m *TransformManager) BaseVector3(id TransformID, p TransformProperty) mgl32.Vec3 {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		return ch.Base()
	}
	return *m.staticVector3(slot, p)
}

// SetVector3 writes a transient value into buffer i. The next
// ResetToBaseValue discards it.
func (m *TransformManager) SetVector3(id TransformID, p TransformProperty, i BufferIndex, v mgl32.Vec3) {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		ch.Set(i, v)
		return
	}
	m.writeStatic(slot, p, v)
}

// BakeVector3 writes v into buffer i and the base value.
func (m *TransformManager) BakeVector3(id TransformID, p TransformProperty, i BufferIndex, v mgl32.Vec3) {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		ch.Bake(i, v)
		return
	}
	m.writeStatic(slot, p, v)
}

// BakeRelativeVector3 adds delta to the base value and bakes the result.
func (m *TransformManager) BakeRelativeVector3(id TransformID, p TransformProperty, i BufferIndex, delta mgl32.Vec3) {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		ch.Bake(i, ch.Base().Add(delta))
		return
	}
	m.writeStatic(slot, p, m.staticVector3(slot, p).Add(delta))
}

// BakeMultiplyVector3 multiplies the base value by factor element-wise and
// bakes the result.
func (m *TransformManager) BakeMultiplyVector3(id TransformID, p TransformProperty, i BufferIndex, factor mgl32.Vec3) {
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		ch.Bake(i, mulVec3(ch.Base(), factor))
		return
	}
	m.writeStatic(slot, p, mulVec3(*m.staticVector3(slot, p), factor))
}

// SetVector3Component writes one axis of property p transiently.
func (m *TransformManager) SetVector3Component(id TransformID, p TransformProperty, i BufferIndex, value float32, axis Axis) {
	checkAxis(axis)
	v := m.Vector3(id, p, i)
	v[axis] = value
	m.SetVector3(id, p, i, v)
}

// BakeVector3Component bakes one axis of property p. The other axes are left
// untouched, both in buffer i and in the base value.
func (m *TransformManager) BakeVector3Component(id TransformID, p TransformProperty, i BufferIndex, value float32, axis Axis) {
	checkAxis(axis)
	slot := m.ids.lookup(id)
	if ch := m.vector3Channel(slot, p); ch != nil {
		base := ch.Base()
		base[axis] = value
		ch.SetBase(base)
		ch.Ptr(i)[axis] = value
		ch.Mark(i)
		return
	}
	v := *m.staticVector3(slot, p)
	v[axis] = value
	m.writeStatic(slot, p, v)
}

// BakeXVector3 bakes the x axis of property p.
func (m *TransformManager) BakeXVector3(id TransformID, p TransformProperty, i BufferIndex, x float32) {
	m.BakeVector3Component(id, p, i, x, AxisX)
}

// BakeYVector3 bakes the y axis of property p.
func (m *TransformManager) BakeYVector3(id TransformID, p TransformProperty, i BufferIndex, y float32) {
	m.BakeVector3Component(id, p, i, y, AxisY)
}

// BakeZVector3 bakes the z axis of property p.
func (m *TransformManager) BakeZVector3(id TransformID, p TransformProperty, i BufferIndex, z float32) {
	m.BakeVector3Component(id, p, i, z, AxisZ)
}

func (m *TransformManager) writeStatic(slot uint32, p TransformProperty, v mgl32.Vec3) {
	dst := m.staticVector3(slot, p)
	if *dst == v {
		return
	}
	*dst = v
	m.dirty[slot] = dirtyBothBuffers
}

func checkAxis(axis Axis) {
	if axis > AxisZ {
		panic(fmt.Sprintf("bough: invalid axis %d", axis))
	}
}

// --- Orientation ---

// Orientation returns the orientation of id in buffer i.
func (m *TransformManager) Orientation(id TransformID, i BufferIndex) mgl32.Quat {
	return m.animatable[m.ids.lookup(id)].orientation.Get(i)
}

// BaseOrientation returns the base orientation of id.
func (m *TransformManager) BaseOrientation(id TransformID) mgl32.Quat {
	return m.animatable[m.ids.lookup(id)].orientation.Base()
}

// SetOrientation writes a transient orientation into buffer i.
func (m *TransformManager) SetOrientation(id TransformID, i BufferIndex, q mgl32.Quat) {
	m.animatable[m.ids.lookup(id)].orientation.Set(i, q)
}

// BakeOrientation writes q into buffer i and the base value.
func (m *TransformManager) BakeOrientation(id TransformID, i BufferIndex, q mgl32.Quat) {
	m.animatable[m.ids.lookup(id)].orientation.Bake(i, q)
}

// BakeRelativeOrientation composes delta onto the base orientation
// (base * delta) and bakes the result.
func (m *TransformManager) BakeRelativeOrientation(id TransformID, i BufferIndex, delta mgl32.Quat) {
	ch := &m.animatable[m.ids.lookup(id)].orientation
	ch.Bake(i, ch.Base().Mul(delta))
}
