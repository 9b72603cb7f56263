package bough

import (
	"time"

	"github.com/rs/zerolog"
)

// SceneBuffers tracks which buffer index the update stage writes. Consumers
// read EventIndex, which holds the last completed frame.
type SceneBuffers struct {
	updateIndex BufferIndex
}

// UpdateIndex returns the buffer written by the current update.
func (b *SceneBuffers) UpdateIndex() BufferIndex { return b.updateIndex }

// EventIndex returns the buffer holding the most recently completed frame.
func (b *SceneBuffers) EventIndex() BufferIndex { return b.updateIndex.Other() }

// Swap flips the buffers at the end of a frame.
func (b *SceneBuffers) Swap() { b.updateIndex = b.updateIndex.Other() }

// FrameObserver is notified after each completed frame. i is the buffer that
// frame was written into, now readable by consumers.
type FrameObserver interface {
	FrameUpdated(frame uint64, i BufferIndex, changed bool)
}

// FrameObserverFunc adapts a function to FrameObserver.
type FrameObserverFunc func(frame uint64, i BufferIndex, changed bool)

func (f FrameObserverFunc) FrameUpdated(frame uint64, i BufferIndex, changed bool) {
	f(frame, i, changed)
}

// UpdateManager runs the per-frame pipeline: reset base values, run
// animations, update transforms, flip buffers.
type UpdateManager struct {
	transforms *TransformManager
	buffers    SceneBuffers
	resetters  []Resetter
	animations []*Animation
	observers  []FrameObserver
	frame      uint64

	debug bool
	log   zerolog.Logger
}

// UpdateOption configures an UpdateManager.
type UpdateOption func(*UpdateManager)

// WithUpdateLogger sets the logger for frame diagnostics.
func WithUpdateLogger(l zerolog.Logger) UpdateOption {
	return func(u *UpdateManager) { u.log = l }
}

// WithDebugStats logs per-frame timing at debug level.
func WithDebugStats(enabled bool) UpdateOption {
	return func(u *UpdateManager) { u.debug = enabled }
}

// NewUpdateManager returns a pipeline driving transforms.
func NewUpdateManager(transforms *TransformManager, opts ...UpdateOption) *UpdateManager {
	u := &UpdateManager{transforms: transforms, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Transforms returns the managed TransformManager.
func (u *UpdateManager) Transforms() *TransformManager { return u.transforms }

// Buffers returns the buffer bookkeeping.
func (u *UpdateManager) Buffers() *SceneBuffers { return &u.buffers }

// Frame returns the number of completed frames.
func (u *UpdateManager) Frame() uint64 { return u.frame }

// SetDebugMode toggles per-frame stats logging.
func (u *UpdateManager) SetDebugMode(enabled bool) { u.debug = enabled }

// AddResetter registers a value whose base is restored every frame alongside
// the transforms.
func (u *UpdateManager) AddResetter(r Resetter) {
	u.resetters = append(u.resetters, r)
}

// AddObserver registers an observer for completed frames.
func (u *UpdateManager) AddObserver(o FrameObserver) {
	u.observers = append(u.observers, o)
}

// Play registers a and starts it. Finished animations are dropped
// automatically.
func (u *UpdateManager) Play(a *Animation) {
	a.Play()
	for _, existing := range u.animations {
		if existing == a {
			return
		}
	}
	u.animations = append(u.animations, a)
}

// Stop ends a with its end action written into the current update buffer
// and unregisters it.
func (u *UpdateManager) Stop(a *Animation) {
	a.Stop(u.buffers.UpdateIndex())
	u.removeAnimation(a)
}

// Animations returns the number of registered animations.
func (u *UpdateManager) Animations() int { return len(u.animations) }

func (u *UpdateManager) removeAnimation(a *Animation) {
	for k, existing := range u.animations {
		if existing == a {
			u.animations = append(u.animations[:k], u.animations[k+1:]...)
			return
		}
	}
}

// Update advances one frame by dt seconds and reports whether any transform
// changed.
func (u *UpdateManager) Update(dt float32) bool {
	var stats debugStats
	i := u.buffers.UpdateIndex()

	start := time.Now()
	stats.reorder = u.transforms.ReorderPending()
	u.transforms.ResetToBaseValue(i)
	for _, r := range u.resetters {
		r.ResetToBaseValue(i)
	}
	if u.debug {
		stats.resetTime = time.Since(start)
	}

	start = time.Now()
	running := u.animations[:0]
	for _, a := range u.animations {
		if !a.Update(i, dt) {
			running = append(running, a)
		}
	}
	for k := len(running); k < len(u.animations); k++ {
		u.animations[k] = nil
	}
	u.animations = running
	if u.debug {
		stats.animateTime = time.Since(start)
	}

	start = time.Now()
	changed := u.transforms.Update(i)
	if u.debug {
		stats.updateTime = time.Since(start)
		stats.components = u.transforms.Len()
		stats.animations = len(u.animations)
		stats.changed = changed
		u.debugLog(stats)
		u.debugCheckTreeDepth()
	}

	u.buffers.Swap()
	u.frame++
	for _, o := range u.observers {
		o.FrameUpdated(u.frame, i, changed)
	}
	return changed
}
