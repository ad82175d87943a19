/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Handicap returns the number of stones for a game between a player of rank
// lower and a player of rank higher. Ranks below the handicap bar are
// treated as the bar itself, so weaker players do not get extra stones.
func Handicap(lower, higher int, params tourney.Parameters) (int, error) {
	if lower > higher {
		return 0, fmt.Errorf("%w: handicap ranks out of order: %v above %v",
			tourney.ErrInvalidInput, tourney.FormatRank(lower),
			tourney.FormatRank(higher))
	}
	raw := max(higher, params.HandicapBar) - max(lower, params.HandicapBar) +
		params.HandicapCorrection

	return min(max(raw, 0), params.HandicapMax), nil
}
