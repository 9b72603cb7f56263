package bough

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EndAction selects what an Animation leaves behind when it finishes or is
// stopped.
type EndAction uint8

const (
	// EndBake keeps the values reached at the moment the animation ends.
	EndBake EndAction = iota
	// EndBakeFinal jumps to the end values and keeps them.
	EndBakeFinal
	// EndDiscard reverts to the base values on the next reset.
	EndDiscard
)

// TimePeriod places an animator inside its animation, in seconds from the
// animation start. A zero Duration spans the whole animation.
type TimePeriod struct {
	Delay    float32
	Duration float32
}

type animatorEntry struct {
	animator AnimatorBase
	period   TimePeriod
}

// Animation drives a set of animators from a shared clock. Progress is kept
// by a linear gween tween from 0 to 1, so the alpha functions of individual
// animators decide the easing.
//
// Call Update once per frame after the transforms have been reset; see
// UpdateManager.
type Animation struct {
	clock    *gween.Tween
	duration float32
	entries  []animatorEntry

	loopCount   int // 0 loops forever
	loopsDone   int
	autoReverse bool
	speed       float32
	delay       float32
	waited      float32
	endAction   EndAction

	playing  bool
	progress float32
	Done     bool
}

// NewAnimation returns a stopped animation lasting duration seconds.
func NewAnimation(duration float32) *Animation {
	if duration <= 0 {
		panic("bough: animation duration must be positive")
	}
	return &Animation{
		clock:     gween.New(0, 1, duration, ease.Linear),
		duration:  duration,
		loopCount: 1,
		speed:     1,
		endAction: EndBake,
	}
}

// Animate adds an animator spanning the whole animation.
func (a *Animation) Animate(animator AnimatorBase) *Animation {
	return a.AnimateBetween(animator, TimePeriod{})
}

// AnimateBetween adds an animator active only during period.
func (a *Animation) AnimateBetween(animator AnimatorBase, period TimePeriod) *Animation {
	a.entries = append(a.entries, animatorEntry{animator: animator, period: period})
	return a
}

// SetLoopCount sets how many times the animation plays; 0 loops forever.
func (a *Animation) SetLoopCount(n int) *Animation {
	a.loopCount = n
	return a
}

// SetAutoReverse makes each loop play forward then backward.
func (a *Animation) SetAutoReverse(enabled bool) *Animation {
	a.autoReverse = enabled
	return a
}

// SetSpeed scales elapsed time; 2 plays twice as fast.
func (a *Animation) SetSpeed(factor float32) *Animation {
	a.speed = factor
	return a
}

// SetDelay postpones the start of the animation after Play.
func (a *Animation) SetDelay(seconds float32) *Animation {
	a.delay = seconds
	return a
}

// SetEndAction sets what remains after the animation finishes or stops.
func (a *Animation) SetEndAction(action EndAction) *Animation {
	a.endAction = action
	return a
}

// Duration returns the length of one loop in seconds.
func (a *Animation) Duration() float32 { return a.duration }

// Progress returns the progress applied in the most recent Update, in [0,1].
func (a *Animation) Progress() float32 { return a.progress }

// Playing reports whether the animation is advancing.
func (a *Animation) Playing() bool { return a.playing }

// Play starts or resumes the animation.
func (a *Animation) Play() {
	if a.Done {
		a.rewind()
	}
	a.playing = true
}

// Pause holds the animation at its current progress. Animated values keep
// being written each frame.
func (a *Animation) Pause() {
	a.playing = false
}

// SetCurrentProgress jumps to progress p in [0,1] of the current loop.
func (a *Animation) SetCurrentProgress(p float32) {
	v, _ := a.clock.Set(clamp01(p) * a.duration)
	a.progress = a.shape(v)
}

// Stop ends the animation now and applies the end action into buffer i.
func (a *Animation) Stop(i BufferIndex) {
	if a.Done {
		return
	}
	a.finish(i)
}

func (a *Animation) rewind() {
	a.clock.Reset()
	a.loopsDone = 0
	a.waited = 0
	a.progress = 0
	a.Done = false
}

// Update advances the clock by dt seconds and writes every animator into
// buffer i. It returns true once the animation has finished.
func (a *Animation) Update(i BufferIndex, dt float32) bool {
	if a.Done {
		return true
	}
	a.prune()
	if !a.playing {
		if a.progress > 0 || a.loopsDone > 0 {
			a.apply(i, a.progress, false)
		}
		return false
	}

	dt *= a.speed
	if a.waited < a.delay {
		a.waited += dt
		if a.waited < a.delay {
			return false
		}
		dt = a.waited - a.delay
	}

	v, finished := a.clock.Update(dt)
	a.progress = a.shape(v)
	if !finished {
		a.apply(i, a.progress, false)
		return false
	}

	a.loopsDone++
	if a.loopCount == 0 || a.loopsDone < a.loopCount {
		a.clock.Reset()
		a.apply(i, a.progress, false)
		return false
	}
	a.finish(i)
	return true
}

func (a *Animation) finish(i BufferIndex) {
	switch a.endAction {
	case EndBake:
		a.apply(i, a.progress, true)
	case EndBakeFinal:
		a.progress = a.shape(1)
		a.apply(i, a.progress, true)
	case EndDiscard:
	}
	a.playing = false
	a.Done = true
}

// shape folds linear clock time into animation progress, mirroring it for
// auto reverse.
func (a *Animation) shape(t float32) float32 {
	if !a.autoReverse {
		return t
	}
	t *= 2
	if t > 1 {
		t = 2 - t
	}
	return t
}

func (a *Animation) apply(i BufferIndex, progress float32, bake bool) {
	elapsed := progress * a.duration
	for _, e := range a.entries {
		e.animator.Update(i, e.period.local(elapsed, a.duration, progress), bake)
	}
}

// prune drops animators whose target was removed.
func (a *Animation) prune() {
	kept := a.entries[:0]
	for _, e := range a.entries {
		if !e.animator.Orphaned() {
			kept = append(kept, e)
		}
	}
	for k := len(kept); k < len(a.entries); k++ {
		a.entries[k] = animatorEntry{}
	}
	a.entries = kept
}

// Len returns the number of non-orphaned animators.
func (a *Animation) Len() int {
	a.prune()
	return len(a.entries)
}

func (p TimePeriod) local(elapsed, total, progress float32) float32 {
	if p.Delay == 0 && (p.Duration == 0 || p.Duration == total) {
		return progress
	}
	d := p.Duration
	if d == 0 {
		d = total - p.Delay
	}
	if d <= 0 {
		if elapsed >= p.Delay {
			return 1
		}
		return 0
	}
	return clamp01((elapsed - p.Delay) / d)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
