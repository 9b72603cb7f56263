package bough

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubleBufferedZeroValueIsClean(t *testing.T) {
	var d DoubleBuffered[int]
	assert.True(t, d.IsClean())
	assert.Equal(t, 0, d.Get(0))
	assert.Equal(t, 0, d.Get(1))
}

func TestDoubleBufferedDecay(t *testing.T) {
	d := NewDoubleBuffered(1)
	assert.True(t, d.Set(0, 7))
	assert.False(t, d.IsClean())
	assert.Equal(t, 1, d.Get(1))

	d.CopyPrevious(1)
	assert.Equal(t, 7, d.Get(1))
	assert.False(t, d.IsClean())

	d.CopyPrevious(1)
	assert.Equal(t, 7, d.Get(0))
	assert.Equal(t, 7, d.Get(1))
	assert.True(t, d.IsClean())

	d.CopyPrevious(1)
	assert.Equal(t, 7, d.Get(1), "clean value is left alone")
}

func TestDoubleBufferedCopyPreviousSameBuffer(t *testing.T) {
	d := NewDoubleBuffered(1)
	d.Set(1, 5)
	d.CopyPrevious(1)
	assert.Equal(t, 5, d.Get(1))
	assert.Equal(t, 1, d.Get(0))
	assert.False(t, d.IsClean(), "the other buffer is still stale")
}

func TestDoubleBufferedSetUnchanged(t *testing.T) {
	d := NewDoubleBuffered(3)
	assert.False(t, d.Set(0, 3))
	assert.True(t, d.IsClean())
}

func TestDoubleBufferedResetDiscardsSet(t *testing.T) {
	d := NewDoubleBuffered(2)
	d.Set(0, 9)

	d.ResetToBase(1)
	assert.Equal(t, 2, d.Get(1))
	d.ResetToBase(0)
	assert.Equal(t, 2, d.Get(0))
	assert.True(t, d.IsClean())
}

func TestDoubleBufferedBakeSurvivesReset(t *testing.T) {
	d := NewDoubleBuffered(2)
	d.Bake(0, 4)
	assert.Equal(t, 4, d.Base())
	assert.Equal(t, 2, d.Get(1), "bake does not write the other buffer")

	d.ResetToBase(1)
	assert.Equal(t, 4, d.Get(1))
	d.ResetToBase(0)
	assert.Equal(t, 4, d.Get(0))
	assert.True(t, d.IsClean())
}

func TestDoubleBufferedSetInitial(t *testing.T) {
	d := NewDoubleBuffered(0)
	d.Set(0, 1)
	d.SetInitial(8)
	assert.True(t, d.IsClean())
	assert.Equal(t, 8, d.Get(0))
	assert.Equal(t, 8, d.Get(1))
	assert.Equal(t, 8, d.Base())
}

func TestBufferIndexOther(t *testing.T) {
	assert.Equal(t, BufferIndex(1), BufferIndex(0).Other())
	assert.Equal(t, BufferIndex(0), BufferIndex(1).Other())
}
