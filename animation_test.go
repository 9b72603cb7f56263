package bough

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

// stepFloat resets p into buffer i and advances a by dt.
func stepFloat(p *BufferedProperty[float32], a *Animation, i BufferIndex, dt float32) bool {
	p.ResetToBaseValue(i)
	return a.Update(i, dt)
}

func TestEase(t *testing.T) {
	assert.InDelta(t, 0.5, AlphaLinear(0.5), 1e-6)
	assert.InDelta(t, 0.25, Ease(ease.InQuad)(0.5), 1e-6)
	assert.InDelta(t, 1, Ease(ease.OutBounce)(1), 1e-6)
}

func TestAnimatorFuncs(t *testing.T) {
	assertVec3Near(t, "to", AnimateToVec3(mgl32.Vec3{10, 0, 0})(0.5, mgl32.Vec3{}), mgl32.Vec3{5, 0, 0})
	assertVec3Near(t, "by", AnimateByVec3(mgl32.Vec3{0, 4, 0})(0.25, mgl32.Vec3{1, 1, 1}), mgl32.Vec3{1, 2, 1})
	assertQuatNear(t, "slerp end", AnimateToQuat(rotZ(90))(1, mgl32.QuatIdent()), rotZ(90))
	assertQuatNear(t, "slerp mid", AnimateToQuat(rotZ(90))(0.5, mgl32.QuatIdent()), rotZ(45))
	assertQuatNear(t, "angle axis", AnimateByAngleAxis(mgl32.DegToRad(60), mgl32.Vec3{0, 0, 2})(0.5, rotZ(10)), rotZ(40))
	assert.InDelta(t, 7.5, AnimateToFloat(10)(0.5, 5), 1e-6)
	assert.InDelta(t, 6, AnimateByFloat(4)(0.25, 5), 1e-6)
}

func TestAnimationRunsAndBakes(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	a.Play()

	assert.False(t, stepFloat(p, a, 0, 0.25))
	assert.InDelta(t, 2.5, p.Get(0), 1e-5)
	assert.InDelta(t, 0, p.Base(), 1e-5, "running animators do not bake")

	assert.False(t, stepFloat(p, a, 1, 0.25))
	assert.InDelta(t, 5, p.Get(1), 1e-5)

	assert.False(t, stepFloat(p, a, 0, 0.25))
	assert.True(t, stepFloat(p, a, 1, 0.25))
	assert.True(t, a.Done)
	assert.InDelta(t, 10, p.Base(), 1e-5)

	stepFloat(p, a, 0, 0.25)
	assert.InDelta(t, 10, p.Get(0), 1e-5)
}

func TestAnimationNotPlayingWritesNothing(t *testing.T) {
	p := NewBufferedProperty[float32](1)
	a := NewAnimation(1).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	assert.False(t, stepFloat(p, a, 0, 0.5))
	assert.InDelta(t, 1, p.Get(0), 1e-6)
	assert.False(t, a.Playing())
}

func TestAnimationEndDiscard(t *testing.T) {
	p := NewBufferedProperty[float32](1)
	a := NewAnimation(1).SetEndAction(EndDiscard).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	a.Play()

	stepFloat(p, a, 0, 0.5)
	assert.InDelta(t, 5.5, p.Get(0), 1e-5)
	require.True(t, stepFloat(p, a, 1, 0.5))
	assert.InDelta(t, 1, p.Base(), 1e-6)

	p.ResetToBaseValue(0)
	p.ResetToBaseValue(1)
	assert.InDelta(t, 1, p.Get(0), 1e-6)
	assert.InDelta(t, 1, p.Get(1), 1e-6)
}

func TestAnimationStop(t *testing.T) {
	tests := []struct {
		name   string
		action EndAction
		want   float32
	}{
		{"bake", EndBake, 4},
		{"bake final", EndBakeFinal, 10},
		{"discard", EndDiscard, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBufferedProperty[float32](0)
			a := NewAnimation(1).SetEndAction(tt.action).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
			a.Play()
			stepFloat(p, a, 0, 0.4)

			p.ResetToBaseValue(1)
			a.Stop(1)
			assert.True(t, a.Done)
			assert.InDelta(t, tt.want, p.Base(), 1e-5)
			assert.True(t, stepFloat(p, a, 0, 0.1))
		})
	}
}

func TestAnimationLoops(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).SetLoopCount(2).Animate(NewAnimator[float32](p, AnimateByFloat(1), nil))
	a.Play()

	var i BufferIndex
	done := 0
	for step := 0; step < 4; step++ {
		if stepFloat(p, a, i, 0.5) {
			done = step
		}
		i = i.Other()
	}
	assert.Equal(t, 3, done)
	assert.InDelta(t, 1, p.Base(), 1e-5)
}

func TestAnimationLoopsForever(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).SetLoopCount(0).Animate(NewAnimator[float32](p, AnimateByFloat(1), nil))
	a.Play()
	for step := 0; step < 50; step++ {
		require.False(t, stepFloat(p, a, BufferIndex(step%2), 0.3))
	}
}

func TestAnimationAutoReverse(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).SetAutoReverse(true).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	a.Play()

	stepFloat(p, a, 0, 0.25)
	assert.InDelta(t, 0.5, a.Progress(), 1e-5)
	assert.InDelta(t, 5, p.Get(0), 1e-5)
	stepFloat(p, a, 1, 0.25)
	assert.InDelta(t, 1, a.Progress(), 1e-5)
	stepFloat(p, a, 0, 0.25)
	assert.InDelta(t, 0.5, a.Progress(), 1e-5)
	require.True(t, stepFloat(p, a, 1, 0.25))
	assert.InDelta(t, 0, p.Base(), 1e-5, "a reversed run ends where it started")
}

func TestAnimationSpeedAndDelay(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).SetSpeed(2).SetDelay(0.5).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	a.Play()

	stepFloat(p, a, 0, 0.125)
	assert.InDelta(t, 0, a.Progress(), 1e-6, "still delayed")
	stepFloat(p, a, 1, 0.25)
	// 0.5s of scaled time: 0.25s finishes the delay, 0.25s advances the clock.
	assert.InDelta(t, 0.25, a.Progress(), 1e-5)
}

func TestAnimationPauseAndSeek(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(2).Animate(NewAnimator[float32](p, AnimateToFloat(10), nil))
	a.Play()
	stepFloat(p, a, 0, 1)
	a.Pause()

	stepFloat(p, a, 1, 1)
	assert.InDelta(t, 0.5, a.Progress(), 1e-5)
	assert.InDelta(t, 5, p.Get(1), 1e-5, "paused animations keep writing")

	a.SetCurrentProgress(0.75)
	a.Play()
	stepFloat(p, a, 0, 0)
	assert.InDelta(t, 7.5, p.Get(0), 1e-5)
}

func TestAnimationTimePeriod(t *testing.T) {
	p := NewBufferedProperty[float32](0)
	a := NewAnimation(1).AnimateBetween(NewAnimator[float32](p, AnimateToFloat(10), nil), TimePeriod{Delay: 0.5, Duration: 0.5})
	a.Play()

	stepFloat(p, a, 0, 0.25)
	assert.InDelta(t, 0, p.Get(0), 1e-5)
	stepFloat(p, a, 1, 0.5)
	assert.InDelta(t, 5, p.Get(1), 1e-5)
}

func TestAnimationSkipsRemovedTransforms(t *testing.T) {
	tm := NewTransformManager()
	kept := tm.CreateTransform()
	gone := tm.CreateTransform()
	a := NewAnimation(1).
		Animate(NewAnimator[mgl32.Vec3](NewVector3Property(tm, kept, PropertyPosition), AnimateToVec3(mgl32.Vec3{4, 0, 0}), nil)).
		Animate(NewAnimator[mgl32.Quat](NewOrientationProperty(tm, gone), AnimateToQuat(rotZ(90)), nil))
	a.Play()
	require.Equal(t, 2, a.Len())

	tm.RemoveTransform(gone)
	assert.Equal(t, 1, a.Len())

	tm.ResetToBaseValue(0)
	assert.NotPanics(t, func() { a.Update(0, 0.5) })
	tm.Update(0)
	assertVec3Near(t, "kept", tm.WorldPosition(kept, 0), mgl32.Vec3{2, 0, 0})
}
