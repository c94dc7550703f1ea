package geometry

import "math"

// em32AziIncl holds the mh acoustics Eigenmike em32 capsule directions as
// (azimuth, inclination) pairs in degrees.
var em32AziIncl = [32][2]float64{
	{0, 69}, {32, 90}, {0, 111}, {328, 90},
	{0, 32}, {45, 55}, {69, 90}, {45, 125},
	{0, 148}, {315, 125}, {291, 90}, {315, 55},
	{91, 21}, {90, 58}, {90, 122}, {89, 159},
	{180, 69}, {212, 90}, {180, 111}, {148, 90},
	{180, 32}, {225, 55}, {249, 90}, {225, 125},
	{180, 148}, {135, 125}, {111, 90}, {135, 55},
	{269, 21}, {270, 58}, {270, 122}, {271, 159},
}

// Eigenmike32 returns the capsule directions of the 32-channel Eigenmike (radius 4.2 cm).
func Eigenmike32() []Direction {
	dirs := make([]Direction, len(em32AziIncl))
	for i, ai := range em32AziIncl {
		dirs[i] = FromInclination(ai[0]*degToRad, ai[1]*degToRad)
	}
	return dirs
}

// Fibonacci returns n nearly uniformly distributed directions on a Fibonacci
// lattice. It returns nil for n < 1.
func Fibonacci(n int) []Direction {
	if n < 1 {
		return nil
	}
	dirs := make([]Direction, n)
	for i := range n {
		z := 1 - (2*float64(i)+1)/float64(n)
		dirs[i] = Direction{
			Azimuth:   math.Remainder(float64(i)*goldenStep, 2*math.Pi),
			Elevation: math.Asin(z),
		}
	}
	return dirs
}

// Circle returns n equally spaced directions on the horizontal plane, starting at azimuth 0.
func Circle(n int) []Direction {
	if n < 1 {
		return nil
	}
	dirs := make([]Direction, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		dirs[i] = Direction{Azimuth: float64(i) * step}
	}
	return dirs
}
