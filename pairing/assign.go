/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"github.com/twmb/murmur3"

	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Assign turns a matched pair into a game. The weaker player takes black in
// a handicap game; otherwise the player with more white games takes black
// and equal balances are split by a hash of the two ids.
func Assign(a, b *scoring.Snapshot, params tourney.Parameters) (tourney.Game,
	error) {

	// a bye carries no handicap or color; the real player is listed as black
	if a.IsBye || b.IsBye {
		if a.IsBye {
			a, b = b, a
		}
		return tourney.Game{BlackID: a.ID, WhiteID: b.ID}, nil
	}

	first, second := a, b
	if first.Rank > second.Rank ||
		(first.Rank == second.Rank && first.ID > second.ID) {
		first, second = second, first
	}

	h, err := Handicap(first.Rank, second.Rank, params)
	if err != nil {
		return tourney.Game{}, err
	}

	black, white := first, second
	switch {
	case h > 0 || first.ColorBalance > second.ColorBalance:
	case second.ColorBalance > first.ColorBalance:
		black, white = second, first
	case colorToss(first.ID, second.ID):
		black, white = second, first
	}

	return tourney.Game{
		BlackID:  black.ID,
		WhiteID:  white.ID,
		Handicap: h,
	}, nil
}

// colorToss reports whether the second of two rank-ordered players takes
// black when their color balances are equal.
func colorToss(firstID, secondID string) bool {
	return murmur3.Sum64([]byte(firstID+"::"+secondID))&1 == 1
}
