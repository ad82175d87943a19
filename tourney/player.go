/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ByeID is the id of the synthetic player injected into odd rosters.
const ByeID = "BYE"

// Player is an entry in a tournament. Rank 0 is 1 dan, 1 is 2 dan, -1 is
// 1 kyu and so on; a higher rank is a stronger player.
type Player struct {
	ID    string `json:"id"`
	Rank  int    `json:"rank"`
	Seed  Score  `json:"seed"`
	IsBye bool   `json:"is_bye,omitempty"`
}

// Bye returns the synthetic bye player.
func Bye() Player {
	return Player{ID: ByeID, IsBye: true}
}

// FormatRank renders a rank as "3k" or "1d".
func FormatRank(rank int) string {
	if rank >= 0 {
		return fmt.Sprintf("%vd", rank+1)
	}

	return fmt.Sprintf("%vk", -rank)
}

// ParseRank is the inverse of FormatRank. It accepts "3k", "1d" and the
// long forms "3 kyu" and "1 dan".
func ParseRank(s string) (int, error) {
	t := strings.ToLower(strings.Join(strings.Fields(s), ""))
	var suffix string
	for _, sfx := range []string{"kyu", "dan", "k", "d"} {
		if strings.HasSuffix(t, sfx) {
			suffix = sfx
			break
		}
	}
	n, err := strconv.Atoi(strings.TrimSuffix(t, suffix))
	if suffix == "" || err != nil || n < 1 {
		return 0, fmt.Errorf("%w: rank %q", ErrInvalidInput, s)
	}
	if suffix[0] == 'k' {
		return -n, nil
	}

	return n - 1, nil
}

// McMahonSeed returns the starting score of a player of the given rank in a
// tournament whose top group starts at bar and whose bottom group starts at
// floor. Players at or above the bar share the highest seed; players at or
// below the floor start at zero.
func McMahonSeed(rank, bar, floor int) (Score, error) {
	if floor > bar {
		return 0, fmt.Errorf("%w: mcmahon floor %v is above bar %v",
			ErrInvalidInput, FormatRank(floor), FormatRank(bar))
	}
	clamped := min(max(rank, floor), bar)

	return Score(2 * (clamped - floor)), nil
}

// WithBye appends the bye player to the roster and the to-match set when
// the to-match set has an odd number of players. Inputs are not modified.
func WithBye(players []Player, toMatch []string) ([]Player, []string) {
	if len(toMatch)%2 == 0 {
		return players, toMatch
	}

	outPlayers := slices.Clone(players)
	hasBye := slices.ContainsFunc(players, func(p Player) bool {
		return p.ID == ByeID
	})
	if !hasBye {
		outPlayers = append(outPlayers, Bye())
	}
	outMatch := append(slices.Clone(toMatch), ByeID)

	return outPlayers, outMatch
}
