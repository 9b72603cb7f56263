package bough

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-4

func assertVec3Near(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	for k := range got {
		assert.InDelta(t, want[k], got[k], epsilon, "%s[%d]: got %v, want %v", name, k, got, want)
	}
}

func assertMat4Near(t *testing.T, name string, got, want mgl32.Mat4) {
	t.Helper()
	for k := range got {
		assert.InDelta(t, want[k], got[k], epsilon, "%s[%d]: got %v, want %v", name, k, got, want)
	}
}

// assertQuatNear compares rotations, treating q and -q as equal.
func assertQuatNear(t *testing.T, name string, got, want mgl32.Quat) {
	t.Helper()
	if got.Dot(want) < 0 {
		got = got.Scale(-1)
	}
	assert.InDelta(t, want.W, got.W, epsilon, "%s.W: got %v, want %v", name, got, want)
	assertVec3Near(t, name+".V", got.V, want.V)
}

// frame runs one reset and update into buffer i.
func frame(tm *TransformManager, i BufferIndex) bool {
	tm.ResetToBaseValue(i)
	return tm.Update(i)
}
