package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGeoMTranslation(t *testing.T) {
	g := GeoM(mgl32.Translate3D(10, 20, 5))
	x, y := g.Apply(1, 2)
	assert.InDelta(t, 11, x, 1e-6)
	assert.InDelta(t, 22, y, 1e-6)
}

func TestGeoMRotationScale(t *testing.T) {
	world := mgl32.HomogRotate3DZ(math.Pi / 2).Mul4(mgl32.Scale3D(2, 2, 1))
	g := GeoM(world)
	x, y := g.Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 2, y, 1e-5)
}

func TestRectIntersectsCircle(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name           string
		cx, cy, radius float64
		want           bool
	}{
		{"inside", 50, 25, 1, true},
		{"overlapping edge", 105, 25, 10, true},
		{"outside", 150, 25, 10, false},
		{"near corner", 103, 53, 5, true},
		{"past corner", 110, 60, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IntersectsCircle(tt.cx, tt.cy, tt.radius))
		})
	}
}

func TestCullerVisible(t *testing.T) {
	c := Culler{Bounds: Rect{Width: 640, Height: 480}}
	assert.True(t, c.Visible(mgl32.Vec4{320, 240, 0, 10}))
	assert.True(t, c.Visible(mgl32.Vec4{-5, 240, 0, 10}))
	assert.False(t, c.Visible(mgl32.Vec4{-50, 240, 0, 10}))
}
