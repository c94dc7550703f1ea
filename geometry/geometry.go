// Package geometry provides direction and coordinate helpers for microphone
// array layouts.
//
// Directions are expressed in radians as (azimuth, elevation) pairs. Azimuth is
// measured counter-clockwise from the +x axis in the horizontal plane and
// elevation is measured from the horizontal plane towards +z. Spherical harmonic
// code works with inclination (polar angle from +z), see [Direction.Inclination].
package geometry

import (
	"fmt"
	"math"
)

const (
	halfPi     = math.Pi / 2
	degToRad   = math.Pi / 180
	radToDeg   = 180 / math.Pi
	goldenStep = 2.399963229728653 // π(3 − √5), Fibonacci lattice azimuth increment
)

// Direction is a unit direction on the sphere.
type Direction struct {
	Azimuth   float64 // radians
	Elevation float64 // radians, 0 on the horizontal plane
}

// Inclination returns the polar angle measured from +z.
func (d Direction) Inclination() float64 {
	return halfPi - d.Elevation
}

// Unit returns the Cartesian unit vector pointing along d.
func (d Direction) Unit() [3]float64 {
	ce := math.Cos(d.Elevation)
	return [3]float64{
		ce * math.Cos(d.Azimuth),
		ce * math.Sin(d.Azimuth),
		math.Sin(d.Elevation),
	}
}

// Valid reports whether both angles are finite.
func (d Direction) Valid() bool {
	return !math.IsNaN(d.Azimuth) && !math.IsInf(d.Azimuth, 0) &&
		!math.IsNaN(d.Elevation) && !math.IsInf(d.Elevation, 0)
}

// FromDegrees builds a Direction from azimuth and elevation in degrees.
func FromDegrees(azimuthDeg, elevationDeg float64) Direction {
	return Direction{Azimuth: azimuthDeg * degToRad, Elevation: elevationDeg * degToRad}
}

// FromInclination builds a Direction from azimuth and inclination in radians.
func FromInclination(azimuth, inclination float64) Direction {
	return Direction{Azimuth: azimuth, Elevation: halfPi - inclination}
}

// Degrees returns azimuth and elevation in degrees.
func (d Direction) Degrees() (azimuthDeg, elevationDeg float64) {
	return d.Azimuth * radToDeg, d.Elevation * radToDeg
}

// CosAngle returns the cosine of the great-circle angle between a and b,
// clamped to [-1, 1].
func CosAngle(a, b Direction) float64 {
	ua, ub := a.Unit(), b.Unit()
	c := ua[0]*ub[0] + ua[1]*ub[1] + ua[2]*ub[2]
	return math.Max(-1, math.Min(1, c))
}

// CartToSph converts a Cartesian point to azimuth, elevation and radius.
func CartToSph(x, y, z float64) (Direction, float64) {
	r := math.Sqrt(x*x + y*y + z*z)
	return Direction{
		Azimuth:   math.Atan2(y, x),
		Elevation: math.Atan2(z, math.Hypot(x, y)),
	}, r
}

// SphToCart converts a direction and radius to Cartesian coordinates.
func SphToCart(d Direction, r float64) (x, y, z float64) {
	u := d.Unit()
	return r * u[0], r * u[1], r * u[2]
}

// Validate checks that dirs is non-empty and every entry is finite.
func Validate(dirs []Direction) error {
	if len(dirs) == 0 {
		return fmt.Errorf("direction list is empty")
	}
	for i, d := range dirs {
		if !d.Valid() {
			return fmt.Errorf("direction %d is not finite: (%v, %v)", i, d.Azimuth, d.Elevation)
		}
	}
	return nil
}
