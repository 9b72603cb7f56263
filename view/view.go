// Package view projects bough transforms onto an Ebitengine screen: world
// matrices become [ebiten.GeoM] values, bounding spheres drive culling, and
// [Renderer] draws each node's content box for debugging.
package view

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bough"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// IntersectsCircle reports whether the circle at (cx, cy) with radius overlaps r.
func (r Rect) IntersectsCircle(cx, cy, radius float64) bool {
	nx := clamp(cx, r.X, r.X+r.Width)
	ny := clamp(cy, r.Y, r.Y+r.Height)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GeoM drops the z row and column of a world matrix, leaving the XY affine
// part as an ebiten.GeoM.
func GeoM(world mgl32.Mat4) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(world.At(0, 0)))
	m.SetElement(1, 0, float64(world.At(1, 0)))
	m.SetElement(0, 1, float64(world.At(0, 1)))
	m.SetElement(1, 1, float64(world.At(1, 1)))
	m.SetElement(0, 2, float64(world.At(0, 3)))
	m.SetElement(1, 2, float64(world.At(1, 3)))
	return m
}

// Culler rejects nodes whose bounding sphere lies outside Bounds.
type Culler struct {
	Bounds Rect
}

// Visible reports whether the sphere (xyz centre, w radius) overlaps Bounds
// in the XY plane.
func (c Culler) Visible(sphere mgl32.Vec4) bool {
	return c.Bounds.IntersectsCircle(float64(sphere[0]), float64(sphere[1]), float64(sphere[3]))
}

// Renderer draws each transform's content box as a tinted quad.
type Renderer struct {
	Culler Culler
	// Tint returns the fill colour for id. Nil draws white.
	Tint func(id bough.TransformID) color.Color

	pixel *ebiten.Image
	drawn int
}

// NewRenderer returns a renderer culling against bounds.
func NewRenderer(bounds Rect) *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{Culler: Culler{Bounds: bounds}, pixel: pixel}
}

// Draw renders every live transform from buffer i, which should be the
// event buffer of the last completed frame. Nodes with zero size are skipped.
func (r *Renderer) Draw(screen *ebiten.Image, transforms *bough.TransformManager, i bough.BufferIndex) {
	r.drawn = 0
	transforms.Each(func(id bough.TransformID) {
		world, size := transforms.WorldMatrixAndSize(id, i)
		if size[0] == 0 || size[1] == 0 {
			return
		}
		if !r.Culler.Visible(transforms.BoundingSphere(id, i)) {
			return
		}

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(size[0]), float64(size[1]))
		op.GeoM.Translate(-float64(size[0])/2, -float64(size[1])/2)
		op.GeoM.Concat(GeoM(world))
		if r.Tint != nil {
			op.ColorScale.ScaleWithColor(r.Tint(id))
		}
		screen.DrawImage(r.pixel, &op)
		r.drawn++
	})
}

// Drawn returns how many quads the last Draw submitted.
func (r *Renderer) Drawn() int { return r.drawn }
