package bough

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setupBenchForest creates n transforms laid out in a grid, every group of
// fanout parented under the previous root.
func setupBenchForest(n, fanout int) (*TransformManager, []TransformID) {
	tm := NewTransformManager(WithCapacity(n))
	ids := make([]TransformID, n)
	var parent TransformID = InvalidTransformID
	for k := range ids {
		ids[k] = tm.CreateTransform()
		tm.BakeVector3(ids[k], PropertyPosition, 0, mgl32.Vec3{float32(k%100) * 40, float32(k/100) * 40, 0})
		if k%fanout == 0 {
			parent = ids[k]
			continue
		}
		tm.SetParent(ids[k], parent)
	}
	return tm, ids
}

// --- Update Benchmarks ---

func BenchmarkUpdate_10000_Static(b *testing.B) {
	tm, _ := setupBenchForest(10000, 10)

	// Warm up: settle both buffers and the initial reorder.
	tm.Update(0)
	tm.Update(1)
	tm.Update(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx := BufferIndex(i & 1)
		tm.ResetToBaseValue(idx)
		tm.Update(idx)
	}
}

func BenchmarkUpdate_10000_Rotating(b *testing.B) {
	tm, ids := setupBenchForest(10000, 10)
	tm.Update(0) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx := BufferIndex(i & 1)
		tm.ResetToBaseValue(idx)
		q := mgl32.QuatRotate(float32(i)*0.01, mgl32.Vec3{0, 0, 1})
		for _, id := range ids {
			tm.SetOrientation(id, idx, q)
		}
		tm.Update(idx)
	}
}

func BenchmarkUpdate_DeepChain(b *testing.B) {
	tm := NewTransformManager(WithCapacity(1000))
	parent := tm.CreateTransform()
	root := parent
	for k := 1; k < 1000; k++ {
		child := tm.CreateTransform()
		tm.BakeVector3(child, PropertyPosition, 0, mgl32.Vec3{1, 0, 0})
		tm.SetParent(child, parent)
		parent = child
	}
	tm.Update(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx := BufferIndex(i & 1)
		tm.ResetToBaseValue(idx)
		tm.SetVector3(root, PropertyPosition, idx, mgl32.Vec3{float32(i), 0, 0})
		tm.Update(idx)
	}
}

func BenchmarkUpdate_MixedInheritance(b *testing.B) {
	tm, ids := setupBenchForest(10000, 10)
	for k, id := range ids {
		if k%10 != 0 {
			tm.SetInheritanceMode(id, InheritPosition|InheritOrientation)
		}
	}
	tm.Update(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx := BufferIndex(i & 1)
		tm.ResetToBaseValue(idx)
		for k := 0; k < len(ids); k += 10 {
			tm.SetVector3(ids[k], PropertyScale, idx, mgl32.Vec3{1 + float32(i%7)*0.1, 1, 1})
		}
		tm.Update(idx)
	}
}

func BenchmarkReorder_10000(b *testing.B) {
	tm, ids := setupBenchForest(10000, 10)
	tm.Update(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Reparenting the last child under the first root forces a reorder.
		tm.SetParent(ids[len(ids)-1], ids[(i%2)*10])
		tm.Update(BufferIndex(i & 1))
	}
}

func BenchmarkUpdateManager_10000_Animated(b *testing.B) {
	tm, ids := setupBenchForest(10000, 10)
	u := NewUpdateManager(tm)
	a := NewAnimation(1).SetLoopCount(0).SetAutoReverse(true)
	for _, id := range ids {
		a.Animate(NewAnimator[mgl32.Vec3](NewVector3Property(tm, id, PropertyScale), AnimateToVec3(mgl32.Vec3{2, 2, 1}), nil))
	}
	u.Play(a)
	u.Update(0) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		u.Update(1.0 / 60)
	}
}
