package bough

import "time"

// debugStats holds per-frame timing. Only populated when the UpdateManager
// is in debug mode.
type debugStats struct {
	resetTime   time.Duration
	animateTime time.Duration
	updateTime  time.Duration
	components  int
	animations  int
	reorder     bool
	changed     bool
}

func (u *UpdateManager) debugLog(stats debugStats) {
	if !u.debug {
		return
	}
	u.log.Debug().
		Uint64("frame", u.frame).
		Dur("reset", stats.resetTime).
		Dur("animate", stats.animateTime).
		Dur("update", stats.updateTime).
		Dur("total", stats.resetTime+stats.animateTime+stats.updateTime).
		Int("components", stats.components).
		Int("animations", stats.animations).
		Bool("reorder", stats.reorder).
		Bool("changed", stats.changed).
		Msg("frame")
}

// debugMaxTreeDepth is the depth past which debug mode warns.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns once per frame if any node sits deeper than
// debugMaxTreeDepth.
func (u *UpdateManager) debugCheckTreeDepth() {
	m := u.transforms
	for slot := uint32(0); slot < m.count; slot++ {
		if level := m.placement[slot].level; level > debugMaxTreeDepth {
			u.log.Warn().
				Uint32("id", uint32(m.componentID[slot])).
				Uint32("depth", level).
				Int("threshold", debugMaxTreeDepth).
				Msg("tree depth exceeds threshold")
			return
		}
	}
}
