// Package lbm implements a generic two-dimensional D2Q9 lattice Boltzmann
// engine. Every lattice site carries nine populations and its own collision
// operator, so bulk fluid, obstacles and boundaries all run through the same
// collide / propagate / periodic cycle.
package lbm

// Q is the number of discrete velocities per site.
const Q = 9

// Populations holds one distribution value per lattice direction.
type Populations [Q]float64

// W holds the lattice weights, indexed like C.
var W = [Q]float64{
	4. / 9.,
	1. / 9., 1. / 9., 1. / 9., 1. / 9.,
	1. / 36., 1. / 36., 1. / 36., 1. / 36.,
}

// C holds the lattice velocities in the order rest, E, N, W, S, NE, NW, SW, SE.
var C = [Q][2]int{
	{0, 0},
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

// Opposite maps each direction to the one with the reversed velocity.
var Opposite = [Q]int{0, 3, 4, 1, 2, 7, 8, 5, 6}

// Density returns the sum of all populations.
func (f *Populations) Density() float64 {
	upper := f[2] + f[5] + f[6]
	medium := f[0] + f[1] + f[3]
	lower := f[4] + f[7] + f[8]
	return upper + medium + lower
}
