/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"math"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// SeedingCoefficient rates how well pairing the players at places i and j
// of a score group of the given size follows the seeding mode, from 0
// (worst) to 1 (ideal). Odd groups are rated as if they had one more
// member; groups of one or two players always rate 1.
func SeedingCoefficient(i, j, size int, mode tourney.SeedingMode) (float64,
	error) {

	if i > j {
		i, j = j, i
	}
	if size < 1 || i < 0 || i == j || j >= size {
		return 0, fmt.Errorf("%w: seeding places %v and %v in group of %v",
			tourney.ErrInvalidInput, i, j, size)
	}
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: seeding mode %d", tourney.ErrUnknownMode,
			int(mode))
	}
	size += size % 2
	if size <= 2 {
		return 1, nil
	}

	gap := float64(size - 2)
	switch mode {
	case tourney.SeedFold:
		return 1 - math.Abs(float64(i+j-size+1))/gap, nil
	case tourney.SeedAdjacent:
		return 1 - float64(j-i-1)/gap, nil
	default:
		return 1 - math.Abs(float64(2*(j-i)-size))/gap, nil
	}
}
