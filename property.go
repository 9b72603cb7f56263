package bough

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PropertyAccessor is the surface an Animator writes through. Get reads the
// working value in buffer i, Set writes a transient value that the next reset
// discards, and Bake also updates the base value.
type PropertyAccessor[T any] interface {
	Get(i BufferIndex) T
	Set(i BufferIndex, v T)
	Bake(i BufferIndex, v T)
	// Live reports whether the target still exists.
	Live() bool
}

// Resetter restores base values into buffer i at the start of a frame,
// before any animator runs.
type Resetter interface {
	ResetToBaseValue(i BufferIndex)
}

// Vector3Property targets one 3D channel of a transform component.
type Vector3Property struct {
	manager  *TransformManager
	id       TransformID
	property TransformProperty
}

// NewVector3Property returns an accessor for property p of id.
func NewVector3Property(m *TransformManager, id TransformID, p TransformProperty) Vector3Property {
	m.ids.check(id)
	if p > PropertySize {
		panic(fmt.Sprintf("bough: unknown transform property %d", p))
	}
	return Vector3Property{manager: m, id: id, property: p}
}

func (p Vector3Property) Get(i BufferIndex) mgl32.Vec3 {
	return p.manager.Vector3(p.id, p.property, i)
}

func (p Vector3Property) Set(i BufferIndex, v mgl32.Vec3) {
	p.manager.SetVector3(p.id, p.property, i, v)
}

func (p Vector3Property) Bake(i BufferIndex, v mgl32.Vec3) {
	p.manager.BakeVector3(p.id, p.property, i, v)
}

// BakeRelative adds delta to the base value.
func (p Vector3Property) BakeRelative(i BufferIndex, delta mgl32.Vec3) {
	p.manager.BakeRelativeVector3(p.id, p.property, i, delta)
}

// BakeMultiply scales the base value element-wise.
func (p Vector3Property) BakeMultiply(i BufferIndex, factor mgl32.Vec3) {
	p.manager.BakeMultiplyVector3(p.id, p.property, i, factor)
}

// BakeComponent bakes a single axis.
func (p Vector3Property) BakeComponent(i BufferIndex, value float32, axis Axis) {
	p.manager.BakeVector3Component(p.id, p.property, i, value, axis)
}

func (p Vector3Property) Live() bool {
	return p.manager.Contains(p.id)
}

// OrientationProperty targets the orientation of a transform component.
type OrientationProperty struct {
	manager *TransformManager
	id      TransformID
}

// NewOrientationProperty returns an accessor for the orientation of id.
func NewOrientationProperty(m *TransformManager, id TransformID) OrientationProperty {
	m.ids.check(id)
	return OrientationProperty{manager: m, id: id}
}

func (p OrientationProperty) Get(i BufferIndex) mgl32.Quat {
	return p.manager.Orientation(p.id, i)
}

func (p OrientationProperty) Set(i BufferIndex, q mgl32.Quat) {
	p.manager.SetOrientation(p.id, i, q)
}

func (p OrientationProperty) Bake(i BufferIndex, q mgl32.Quat) {
	p.manager.BakeOrientation(p.id, i, q)
}

// BakeRelative composes delta onto the base orientation.
func (p OrientationProperty) BakeRelative(i BufferIndex, delta mgl32.Quat) {
	p.manager.BakeRelativeOrientation(p.id, i, delta)
}

func (p OrientationProperty) Live() bool {
	return p.manager.Contains(p.id)
}

// BufferedProperty is a free-standing animatable value such as an opacity or
// a colour channel owned by the caller. Register it with
// UpdateManager.AddResetter so its base value is restored each frame.
type BufferedProperty[T comparable] struct {
	value DoubleBuffered[T]
}

// NewBufferedProperty returns a property holding v in both buffers.
func NewBufferedProperty[T comparable](v T) *BufferedProperty[T] {
	return &BufferedProperty[T]{value: NewDoubleBuffered(v)}
}

func (p *BufferedProperty[T]) Get(i BufferIndex) T { return p.value.Get(i) }
func (p *BufferedProperty[T]) Set(i BufferIndex, v T) { p.value.Set(i, v) }
func (p *BufferedProperty[T]) Bake(i BufferIndex, v T) { p.value.Bake(i, v) }
func (p *BufferedProperty[T]) Base() T { return p.value.Base() }
func (p *BufferedProperty[T]) Live() bool { return true }
func (p *BufferedProperty[T]) ResetToBaseValue(i BufferIndex) { p.value.ResetToBase(i) }
