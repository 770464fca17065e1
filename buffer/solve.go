package buffer

import (
	"math"
)

// Infeasible is returned by Solve when no non-negative wire offset exists.
const Infeasible = -1.0

// Solve returns the root of a*l^2 + b*l + c = 0 used as a stage length. Of
// two real roots the larger is taken. a must be positive.
func Solve(a, b, c float64) float64 {
	disc := b*b - 4*a*c

	switch {
	case disc < 0:
		return Infeasible
	case disc == 0:
		return -b / (2 * a)
	}

	root := (-b + math.Sqrt(disc)) / (2 * a)
	if root < 0 {
		return Infeasible
	}
	return root
}
