package bough

import "github.com/go-gl/mathgl/mgl32"

const noSlot = ^uint32(0)

// Update recomputes local matrices, world matrices and bounding spheres into
// buffer i. A pending reorder runs first, so slots are visited parent before
// child. It reports whether any node changed its own inputs since the values
// held in buffer i were last written.
//
// Channel states only age in ResetToBaseValue. Call it with the same index
// before every Update; without it a node written once with Set or Bake is
// recomputed on every Update.
func (m *TransformManager) Update(i BufferIndex) bool {
	if m.reorder {
		m.reorderComponents()
	}

	n := int(m.count)
	if cap(m.recomputed) < n {
		m.recomputed = make([]bool, n, cap(m.componentID))
	}
	m.recomputed = m.recomputed[:n]

	changed := false
	for slot := uint32(0); slot < m.count; slot++ {
		own := m.dirty[slot] != 0 || !m.animatable[slot].isClean() || !m.size[slot].IsClean()
		m.dirty[slot] >>= 1

		parentSlot := noSlot
		if p := m.parent[slot]; p != InvalidTransformID {
			parentSlot = m.ids.lookup(p)
		}
		inherited := parentSlot != noSlot && m.inheritance[slot] != DontInheritTransform && m.recomputed[parentSlot]

		if !own && !inherited {
			m.local[slot].CopyPrevious(i)
			m.world[slot].CopyPrevious(i)
			m.bounds[slot].CopyPrevious(i)
			m.recomputed[slot] = false
			m.localChanged[slot] = false
			continue
		}

		changed = changed || own
		m.recomputed[slot] = true
		m.computeTransform(slot, parentSlot, i)
	}
	return changed
}

func (m *TransformManager) computeTransform(slot, parentSlot uint32, i BufferIndex) {
	a := &m.animatable[slot]
	st := &m.static[slot]
	scale := a.scale.Get(i)
	orientation := a.orientation.Get(i)
	position := a.position.Get(i)
	size := m.size[slot].Get(i)
	mode := m.inheritance[slot]

	center := centerOffset(st.anchorPoint, size, scale, orientation, st.positionUsesAnchorPoint)

	var local, world mgl32.Mat4
	switch {
	case parentSlot == noSlot || mode == DontInheritTransform:
		local = composeTransform(scale, orientation, position.Add(center))
		world = local

	case mode == InheritAll:
		origin := parentOriginOffset(st.parentOrigin, m.size[parentSlot].Get(i))
		local = composeTransform(scale, orientation, position.Add(center).Add(origin))
		world = m.world[parentSlot].Get(i).Mul4(local)

	default:
		local, world = m.computeMixed(slot, parentSlot, i, scale, orientation, position, size, center)
	}

	m.localChanged[slot] = local != m.local[slot].Get(i.Other())
	m.local[slot].Put(i, local)
	m.world[slot].Put(i, world)
	m.bounds[slot].Put(i, boundingSphere(world, size))
}

// computeMixed handles a node that inherits only some channels. The full
// inheritance result is decomposed and the inherited channels are taken from
// it; the rest come from the node's own values. The local matrix is then
// derived back from the parent so that local change tracking keeps working.
func (m *TransformManager) computeMixed(
	slot, parentSlot uint32, i BufferIndex,
	scale mgl32.Vec3, orientation mgl32.Quat, position, size, center mgl32.Vec3,
) (local, world mgl32.Mat4) {
	st := &m.static[slot]
	mode := m.inheritance[slot]
	parentWorld := m.world[parentSlot].Get(i)
	parentPosition, parentOrientation, parentScale := decomposeTransform(parentWorld)

	origin := parentOriginOffset(st.parentOrigin, m.size[parentSlot].Get(i))
	full := parentWorld.Mul4(composeTransform(scale, orientation, position.Add(center).Add(origin)))
	_, fullOrientation, fullScale := decomposeTransform(full)

	worldScale := scale
	if mode&InheritScale != 0 {
		worldScale = fullScale
	}
	worldOrientation := orientation
	if mode&InheritOrientation != 0 {
		worldOrientation = fullOrientation
	}

	worldCenter := centerOffset(st.anchorPoint, size, worldScale, worldOrientation, st.positionUsesAnchorPoint)
	// Only the parent-origin attachment point goes through the parent's world
	// matrix; the authored position is not scaled or rotated by the parent.
	worldPosition := position.Add(worldCenter)
	if mode&InheritPosition != 0 {
		worldPosition = worldPosition.Add(mgl32.TransformCoordinate(origin, parentWorld))
	}

	world = composeTransform(worldScale, worldOrientation, worldPosition)
	local = composeInverseTransform(parentScale, parentOrientation, parentPosition).Mul4(world)
	return local, world
}
