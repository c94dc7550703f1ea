package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coordTolerance = 1e-12

func TestCartToSph(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
		azi     float64
		elev    float64
		radius  float64
	}{
		{"+x", 1, 0, 0, 0, 0, 1},
		{"-x", -1, 0, 0, math.Pi, 0, 1},
		{"+y", 0, 1, 0, math.Pi / 2, 0, 1},
		{"-y", 0, -1, 0, -math.Pi / 2, 0, 1},
		{"+z", 0, 0, 1, 0, math.Pi / 2, 1},
		{"-z", 0, 0, -1, 0, -math.Pi / 2, 1},
		{"diagonal", 1, 1, 1, math.Pi / 4, math.Asin(1 / math.Sqrt(3)), math.Sqrt(3)},
		{"negative diagonal", -1, -1, -1, -3 * math.Pi / 4, -math.Asin(1 / math.Sqrt(3)), math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := CartToSph(tt.x, tt.y, tt.z)
			assert.InDelta(t, tt.azi, d.Azimuth, coordTolerance)
			assert.InDelta(t, tt.elev, d.Elevation, coordTolerance)
			assert.InDelta(t, tt.radius, r, coordTolerance)

			x, y, z := SphToCart(d, r)
			assert.InDelta(t, tt.x, x, coordTolerance)
			assert.InDelta(t, tt.y, y, coordTolerance)
			assert.InDelta(t, tt.z, z, coordTolerance)
		})
	}
}

func TestInclination(t *testing.T) {
	d := FromInclination(1.0, 0.3)
	assert.InDelta(t, math.Pi/2-0.3, d.Elevation, coordTolerance)
	assert.InDelta(t, 0.3, d.Inclination(), coordTolerance)
}

func TestCosAngle(t *testing.T) {
	a := FromDegrees(0, 0)
	assert.InDelta(t, 1.0, CosAngle(a, a), coordTolerance)
	assert.InDelta(t, 0.0, CosAngle(a, FromDegrees(90, 0)), coordTolerance)
	assert.InDelta(t, -1.0, CosAngle(a, FromDegrees(180, 0)), coordTolerance)
	assert.InDelta(t, 0.0, CosAngle(a, FromDegrees(0, 90)), coordTolerance)
}

func TestEigenmike32(t *testing.T) {
	dirs := Eigenmike32()
	require.Len(t, dirs, 32)
	require.NoError(t, Validate(dirs))

	// Capsule 13 sits close to the north pole.
	assert.InDelta(t, 69.0, dirs[12].Elevation*radToDeg, 1e-9)
}

func TestFibonacci(t *testing.T) {
	assert.Nil(t, Fibonacci(0))

	dirs := Fibonacci(64)
	require.Len(t, dirs, 64)
	require.NoError(t, Validate(dirs))

	// The centroid of a near-uniform grid sits at the origin.
	var sum [3]float64
	for _, d := range dirs {
		u := d.Unit()
		for k := range sum {
			sum[k] += u[k]
		}
	}
	for k := range sum {
		assert.InDelta(t, 0.0, sum[k]/64, 0.05)
	}
}

func TestValidate(t *testing.T) {
	require.Error(t, Validate(nil))
	require.Error(t, Validate([]Direction{{Azimuth: math.NaN()}}))
	require.Error(t, Validate([]Direction{{Elevation: math.Inf(1)}}))
	require.NoError(t, Validate(Circle(4)))
}
