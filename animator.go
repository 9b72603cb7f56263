package bough

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// AlphaFunc maps linear animation progress in [0,1] to eased progress.
type AlphaFunc func(progress float32) float32

// Ease adapts a gween easing function to an AlphaFunc.
func Ease(fn ease.TweenFunc) AlphaFunc {
	return func(progress float32) float32 {
		return fn(progress, 0, 1, 1)
	}
}

// AlphaLinear is the default alpha function.
var AlphaLinear = Ease(ease.Linear)

// AnimatorFunc computes a new value from eased progress and the working value
// read from the target, which is normally the base value after the frame's
// reset.
type AnimatorFunc[T any] func(progress float32, current T) T

// AnimatorBase is the type-erased view of an Animator held by an Animation.
type AnimatorBase interface {
	// Update writes the animated value for progress into buffer i, baking it
	// when bake is set.
	Update(i BufferIndex, progress float32, bake bool)
	// Orphaned reports whether the animated target no longer exists.
	Orphaned() bool
}

// Animator applies an AnimatorFunc to one property.
type Animator[T any] struct {
	target PropertyAccessor[T]
	fn     AnimatorFunc[T]
	alpha  AlphaFunc
}

// NewAnimator returns an animator writing fn's result into target. A nil alpha
// means AlphaLinear.
func NewAnimator[T any](target PropertyAccessor[T], fn AnimatorFunc[T], alpha AlphaFunc) *Animator[T] {
	if alpha == nil {
		alpha = AlphaLinear
	}
	return &Animator[T]{target: target, fn: fn, alpha: alpha}
}

func (a *Animator[T]) Update(i BufferIndex, progress float32, bake bool) {
	if !a.target.Live() {
		return
	}
	v := a.fn(a.alpha(progress), a.target.Get(i))
	if bake {
		a.target.Bake(i, v)
	} else {
		a.target.Set(i, v)
	}
}

func (a *Animator[T]) Orphaned() bool {
	return !a.target.Live()
}

// AnimateToVec3 interpolates from the current value to target.
func AnimateToVec3(target mgl32.Vec3) AnimatorFunc[mgl32.Vec3] {
	return func(progress float32, current mgl32.Vec3) mgl32.Vec3 {
		return current.Add(target.Sub(current).Mul(progress))
	}
}

// AnimateByVec3 adds a growing fraction of delta to the current value.
func AnimateByVec3(delta mgl32.Vec3) AnimatorFunc[mgl32.Vec3] {
	return func(progress float32, current mgl32.Vec3) mgl32.Vec3 {
		return current.Add(delta.Mul(progress))
	}
}

// AnimateToQuat slerps from the current orientation to target.
func AnimateToQuat(target mgl32.Quat) AnimatorFunc[mgl32.Quat] {
	return func(progress float32, current mgl32.Quat) mgl32.Quat {
		return mgl32.QuatSlerp(current, target, progress)
	}
}

// AnimateByAngleAxis rotates the current orientation by a growing fraction of
// angle radians about axis.
func AnimateByAngleAxis(angle float32, axis mgl32.Vec3) AnimatorFunc[mgl32.Quat] {
	axis = axis.Normalize()
	return func(progress float32, current mgl32.Quat) mgl32.Quat {
		return current.Mul(mgl32.QuatRotate(angle*progress, axis))
	}
}

// AnimateToFloat interpolates a scalar to target.
func AnimateToFloat(target float32) AnimatorFunc[float32] {
	return func(progress float32, current float32) float32 {
		return current + (target-current)*progress
	}
}

// AnimateByFloat adds a growing fraction of delta to a scalar.
func AnimateByFloat(delta float32) AnimatorFunc[float32] {
	return func(progress float32, current float32) float32 {
		return current + delta*progress
	}
}
