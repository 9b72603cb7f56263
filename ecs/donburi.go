package ecs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TransformData links an entity to its transform component.
type TransformData struct {
	ID     bough.TransformID
	Parent donburi.Entity
}

// Transform is the component carrying TransformData.
var Transform = donburi.NewComponentType[TransformData]()

// WorldMatrix receives the entity's world matrix after every frame when the
// entity carries it.
var WorldMatrix = donburi.NewComponentType[mgl32.Mat4]()

// FrameChanged describes a completed frame.
type FrameChanged struct {
	Frame   uint64
	Buffer  bough.BufferIndex
	Changed bool
}

// FrameChangedEvent is published once per frame by a Bridge.
var FrameChangedEvent = events.NewEventType[FrameChanged]()

var worldMatrices = donburi.NewQuery(filter.Contains(Transform, WorldMatrix))

var _ bough.FrameObserver = (*Bridge)(nil)

// Bridge mirrors entity lifecycle and parenting into a TransformManager.
type Bridge struct {
	world      donburi.World
	transforms *bough.TransformManager
	entities   map[bough.TransformID]donburi.Entity
}

// NewBridge creates a bridge between world and transforms.
func NewBridge(world donburi.World, transforms *bough.TransformManager) *Bridge {
	return &Bridge{
		world:      world,
		transforms: transforms,
		entities:   make(map[bough.TransformID]donburi.Entity),
	}
}

// Attach creates a transform for entry and stores it in the Transform
// component, adding the component when missing. Attaching twice returns the
// existing id.
func (b *Bridge) Attach(entry *donburi.Entry) bough.TransformID {
	if entry.HasComponent(Transform) {
		data := Transform.Get(entry)
		if e, ok := b.entities[data.ID]; ok && e == entry.Entity() {
			return data.ID
		}
	} else {
		entry.AddComponent(Transform)
	}
	id := b.transforms.CreateTransform()
	Transform.SetValue(entry, TransformData{ID: id, Parent: donburi.Null})
	b.entities[id] = entry.Entity()
	return id
}

// Create makes a new entity with a transform and returns its entry.
func (b *Bridge) Create() *donburi.Entry {
	entry := b.world.Entry(b.world.Create(Transform))
	b.Attach(entry)
	return entry
}

// SetParent parents child under parent, or makes it a root when parent is
// nil.
func (b *Bridge) SetParent(child, parent *donburi.Entry) {
	data := b.data(child)
	if parent == nil {
		b.transforms.SetParent(data.ID, bough.InvalidTransformID)
		data.Parent = donburi.Null
		return
	}
	b.transforms.SetParent(data.ID, b.data(parent).ID)
	data.Parent = parent.Entity()
}

// ID returns the transform of entry.
func (b *Bridge) ID(entry *donburi.Entry) bough.TransformID {
	return b.data(entry).ID
}

// Entity returns the entity owning id.
func (b *Bridge) Entity(id bough.TransformID) (donburi.Entity, bool) {
	e, ok := b.entities[id]
	return e, ok
}

// Destroy removes entry, its descendants and their transforms. Children are
// removed before their parents.
func (b *Bridge) Destroy(entry *donburi.Entry) {
	id := b.data(entry).ID
	for _, child := range b.transforms.Children(id) {
		e, ok := b.entities[child]
		if !ok {
			b.transforms.SetParent(child, bough.InvalidTransformID)
			continue
		}
		b.Destroy(b.world.Entry(e))
	}
	b.transforms.RemoveTransform(id)
	delete(b.entities, id)
	b.world.Remove(entry.Entity())
}

// FrameUpdated copies world matrices of buffer i into WorldMatrix components
// and publishes a FrameChangedEvent. Call ProcessEvents on the world to
// deliver it.
func (b *Bridge) FrameUpdated(frame uint64, i bough.BufferIndex, changed bool) {
	if changed {
		worldMatrices.Each(b.world, func(entry *donburi.Entry) {
			id := Transform.Get(entry).ID
			if b.transforms.Contains(id) {
				WorldMatrix.SetValue(entry, b.transforms.WorldMatrix(id, i))
			}
		})
	}
	FrameChangedEvent.Publish(b.world, FrameChanged{Frame: frame, Buffer: i, Changed: changed})
}

func (b *Bridge) data(entry *donburi.Entry) *TransformData {
	if !entry.HasComponent(Transform) {
		panic(fmt.Sprintf("bough/ecs: entity %v has no transform", entry.Entity()))
	}
	return Transform.Get(entry)
}
