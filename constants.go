package arraysht

import "math"

// Physical constants
const (
	fourPi   = 4 * math.Pi
	sqrt4Pi  = 3.5449077018110318 // √(4π)
	dbFactor = 20.0               // amplitude decibels
)

// Design limits
const (
	minFilterLen = 2
	minOrder     = 1
	minNumMics   = 1

	// lsOrderFactor scales kR_max to the auxiliary array order of the
	// least-squares design.
	lsOrderFactor = 2.0

	// minArrayOrder is the largest array order that is still rejected.
	minArrayOrder = 1

	// lsBetaDivisor gives β = 1/(2α) for the least-squares design.
	lsBetaDivisor = 2.0
)
