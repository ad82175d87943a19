/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// FloatingCoefficient rates how suitable the player at place (0 is the top
// of the group) is for floating out of a score group of the given size.
// Empty and single-player groups rate 1.
func FloatingCoefficient(place, size int, mode tourney.FloatingMode) (float64,
	error) {

	if !mode.Valid() {
		return 0, fmt.Errorf("%w: floating mode %d", tourney.ErrUnknownMode,
			int(mode))
	}
	if size <= 1 {
		return 1, nil
	}
	if place < 0 || place >= size {
		return 0, fmt.Errorf("%w: floating place %v in group of %v",
			tourney.ErrInvalidInput, place, size)
	}

	last := float64(size - 1)
	switch mode {
	case tourney.FloatTop:
		return 1 - float64(place)/last, nil
	case tourney.FloatBottom:
		return float64(place) / last, nil
	}

	if size == 2 {
		return 1, nil
	}
	mid := (size - 1) / 2
	r := mid - abs(mid-place)
	if place > mid {
		// even groups have two middle places
		r += 1 - size%2
	}

	return float64(r) / float64(mid), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
