package bough

import (
	"cmp"
	"slices"
	"time"
)

const unresolvedLevel = ^uint32(0)

type orderItem struct {
	id    TransformID
	scene uint32
	level uint32
}

// reorderComponents sorts storage so that every parent precedes its children
// and each tree is contiguous. Roots keep their relative slot order as scene
// ids, and ties keep insertion order.
func (m *TransformManager) reorderComponents() {
	start := time.Now()

	var scenes uint32
	for slot := uint32(0); slot < m.count; slot++ {
		if m.parent[slot] == InvalidTransformID {
			m.placement[slot] = placement{scene: scenes}
			scenes++
		} else {
			m.placement[slot] = placement{level: unresolvedLevel}
		}
	}

	var chain []uint32
	m.order = m.order[:0]
	for slot := uint32(0); slot < m.count; slot++ {
		chain = m.resolvePlacement(slot, chain)
		p := m.placement[slot]
		m.order = append(m.order, orderItem{id: m.componentID[slot], scene: p.scene, level: p.level})
	}

	slices.SortStableFunc(m.order, func(a, b orderItem) int {
		if c := cmp.Compare(a.scene, b.scene); c != 0 {
			return c
		}
		return cmp.Compare(a.level, b.level)
	})

	moved := 0
	for target := uint32(0); target < m.count; target++ {
		src := m.ids.lookup(m.order[target].id)
		if src == target {
			continue
		}
		m.swapSlots(src, target)
		moved++
	}
	m.reorder = false

	m.log.Debug().
		Uint32("components", m.count).
		Uint32("scenes", scenes).
		Int("moved", moved).
		Dur("took", time.Since(start)).
		Msg("reorder")
}

// resolvePlacement walks up from slot to the nearest resolved ancestor and
// fills in every node on the way. chain is reused scratch space.
func (m *TransformManager) resolvePlacement(slot uint32, chain []uint32) []uint32 {
	chain = chain[:0]
	cur := slot
	for m.placement[cur].level == unresolvedLevel {
		if uint32(len(chain)) >= m.count {
			panic("bough: parent cycle detected")
		}
		chain = append(chain, cur)
		cur = m.ids.lookup(m.parent[cur])
	}
	p := m.placement[cur]
	for k := len(chain) - 1; k >= 0; k-- {
		p.level++
		m.placement[chain[k]] = p
	}
	return chain
}

func (m *TransformManager) swapSlots(a, b uint32) {
	m.componentID[a], m.componentID[b] = m.componentID[b], m.componentID[a]
	m.parent[a], m.parent[b] = m.parent[b], m.parent[a]
	m.animatable[a], m.animatable[b] = m.animatable[b], m.animatable[a]
	m.static[a], m.static[b] = m.static[b], m.static[a]
	m.size[a], m.size[b] = m.size[b], m.size[a]
	m.inheritance[a], m.inheritance[b] = m.inheritance[b], m.inheritance[a]
	m.local[a], m.local[b] = m.local[b], m.local[a]
	m.world[a], m.world[b] = m.world[b], m.world[a]
	m.bounds[a], m.bounds[b] = m.bounds[b], m.bounds[a]
	m.dirty[a], m.dirty[b] = m.dirty[b], m.dirty[a]
	m.localChanged[a], m.localChanged[b] = m.localChanged[b], m.localChanged[a]
	m.placement[a], m.placement[b] = m.placement[b], m.placement[a]

	m.ids.move(m.componentID[a], a)
	m.ids.move(m.componentID[b], b)
}
