package bough

import (
	"github.com/go-gl/mathgl/mgl32"
)

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func divVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

// composeTransform builds T * R * S. Column-major, column vectors.
func composeTransform(scale mgl32.Vec3, orientation mgl32.Quat, position mgl32.Vec3) mgl32.Mat4 {
	m := orientation.Mat4()
	for col := 0; col < 3; col++ {
		s := scale[col]
		m[col*4+0] *= s
		m[col*4+1] *= s
		m[col*4+2] *= s
	}
	m[12], m[13], m[14] = position[0], position[1], position[2]
	return m
}

// composeInverseTransform builds (T * R * S)^-1 = S^-1 * R^-1 * T^-1 without a
// general 4x4 inversion.
func composeInverseTransform(scale mgl32.Vec3, orientation mgl32.Quat, position mgl32.Vec3) mgl32.Mat4 {
	invScale := mgl32.Scale3D(1/scale[0], 1/scale[1], 1/scale[2])
	invRotate := orientation.Inverse().Mat4()
	invTranslate := mgl32.Translate3D(-position[0], -position[1], -position[2])
	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// decomposeTransform splits an affine T * R * S matrix into its components.
// Zero scale yields NaN components; callers do not guard against it.
func decomposeTransform(m mgl32.Mat4) (position mgl32.Vec3, orientation mgl32.Quat, scale mgl32.Vec3) {
	position = mgl32.Vec3{m[12], m[13], m[14]}
	scale = mgl32.Vec3{
		mgl32.Vec3{m[0], m[1], m[2]}.Len(),
		mgl32.Vec3{m[4], m[5], m[6]}.Len(),
		mgl32.Vec3{m[8], m[9], m[10]}.Len(),
	}
	var rot mgl32.Mat4
	for col := 0; col < 3; col++ {
		s := scale[col]
		rot[col*4+0] = m[col*4+0] / s
		rot[col*4+1] = m[col*4+1] / s
		rot[col*4+2] = m[col*4+2] / s
	}
	rot[15] = 1
	orientation = mgl32.Mat4ToQuat(rot)
	return position, orientation, scale
}

// centerOffset is the shift from the anchor point to the centre of the
// content box, in the node's scaled and rotated frame.
func centerOffset(anchor, size, scale mgl32.Vec3, orientation mgl32.Quat, usesAnchor bool) mgl32.Vec3 {
	c := mulVec3(mulVec3(half.Sub(anchor), size), scale)
	c = orientation.Rotate(c)
	if !usesAnchor {
		c = c.Sub(mulVec3(topLeft.Sub(anchor), size))
	}
	return c
}

// parentOriginOffset is the point of the parent's content box the node's
// position is measured from, relative to the parent's centre.
func parentOriginOffset(parentOrigin, parentSize mgl32.Vec3) mgl32.Vec3 {
	return mulVec3(parentOrigin.Sub(half), parentSize)
}

// boundingSphere returns the world-space centre and radius of a node's
// content box.
func boundingSphere(world mgl32.Mat4, size mgl32.Vec3) mgl32.Vec4 {
	centerToEdge := mgl32.Vec4{size.Len() * 0.5, 0, 0, 0}
	radius := world.Mul4x1(centerToEdge).Vec3().Len()
	return mgl32.Vec4{world[12], world[13], world[14], radius}
}
