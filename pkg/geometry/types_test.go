package geometry_test

import (
	"image"
	"testing"

	"ninegrid/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := geometry.NewRect(10, 20, 100, 50)

	assert.True(t, r.Contains(geometry.NewPoint2D(10, 20)))
	assert.True(t, r.Contains(geometry.NewPoint2D(110, 70)))
	assert.True(t, r.Contains(r.Center()))
	assert.False(t, r.Contains(geometry.NewPoint2D(9, 20)))
	assert.False(t, r.Contains(geometry.NewPoint2D(50, 71)))
}

func TestRectIntConversions(t *testing.T) {
	r := geometry.RectInt{X: 300, Y: 400, Width: 300, Height: 400}

	assert.Equal(t, image.Rect(300, 400, 600, 800), r.ToImageRect())
	assert.Equal(t, geometry.NewRect(300, 400, 300, 400), r.ToFloat())
	assert.Equal(t, geometry.NewPoint2D(450, 600), r.Center())
}

func TestPointDistance(t *testing.T) {
	a := geometry.NewPoint2D(0, 0)
	b := geometry.NewPoint2D(3, 4)

	assert.InDelta(t, 5, a.Distance(b), 1e-9)
	assert.Equal(t, geometry.NewPoint2D(6, 8), b.Scale(2))
}
