// Package bough computes world transforms for a retained-mode 3D scene graph.
//
// Every node owns a transform component inside a [TransformManager]. Components
// are stored as parallel arrays and addressed only through a stable
// [TransformID], so storage can be compacted and reordered between frames
// without callers noticing. Parenting is expressed with
// [TransformManager.SetParent]; each frame a pending reorder puts parents
// before children and [TransformManager.Update] composes the hierarchy in a
// single pass.
//
// # Quick start
//
//	tm := bough.NewTransformManager()
//	root := tm.CreateTransform()
//	child := tm.CreateTransform()
//	tm.SetParent(child, root)
//	tm.BakeVector3(root, bough.PropertySize, 0, mgl32.Vec3{100, 100, 0})
//	tm.BakeVector3(child, bough.PropertyPosition, 0, mgl32.Vec3{10, 10, 0})
//
//	tm.ResetToBaseValue(0)
//	tm.Update(0)
//	pos := tm.WorldPosition(child, 0) // (-40, -40, 0)
//
// # Double buffering
//
// Animatable channels (position, scale, orientation, size) and all outputs are
// [DoubleBuffered]. The update stage writes buffer i while a renderer reads
// buffer 1-i, the previous completed frame. [UpdateManager] owns that
// bookkeeping: each call resets base values, runs animations, updates
// transforms and flips the buffers.
//
//	updates := bough.NewUpdateManager(tm)
//	for running {
//		updates.Update(dt)
//		draw(tm, updates.Buffers().EventIndex())
//	}
//
// # Set and bake
//
// A Set write lasts one frame: the next reset restores the base value. Bake
// writes the base value too, so the change persists. Animators use Set while
// running and Bake when they finish, according to the [EndAction].
//
// # Anchoring
//
// A node's position places its anchor point (default: the centre of its
// content box) relative to its parent origin (default: the parent's top-left
// corner at mid depth). [TransformManager.SetPositionUsesAnchorPoint] makes the
// position place the top-left corner instead.
//
// # Inheritance
//
// By default a node inherits position, scale and orientation from its parent.
// Any subset can be dropped with SetInheritPosition, SetInheritScale and
// SetInheritOrientation; such nodes take a slower path that decomposes the
// parent's world matrix.
//
// # Errors
//
// Invalid ids, self-parenting and parent cycles are programmer errors and
// panic with a "bough:" message. Degenerate inputs such as a zero scale are
// not checked and produce degenerate matrices.
//
// # Subpackages
//
// Package ecs mirrors transforms into a Donburi world; package view projects
// world matrices onto an Ebitengine screen.
package bough
