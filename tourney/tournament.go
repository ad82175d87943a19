/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
)

// Tournament is the document handed to the pairing engine: the roster, the
// games of every round played so far and the pairing policy.
type Tournament struct {
	Name       string     `json:"name"`
	Date       string     `json:"date,omitempty"`
	Players    []Player   `json:"players"`
	Rounds     [][]Game   `json:"rounds"`
	Parameters Parameters `json:"parameters"`
}

// Decode parses and validates a JSON tournament document. Missing
// parameters default to DefaultParameters.
func Decode(r io.Reader) (*Tournament, error) {
	t := &Tournament{Parameters: DefaultParameters()}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("unable to decode tournament: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Encode writes the tournament as indented JSON.
func (t *Tournament) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(t)
}

// Validate checks that player ids are unique, that every game references
// two different known players and that nobody plays twice in one round.
func (t *Tournament) Validate() error {
	ids := lo.Map(t.Players, func(p Player, _ int) string { return p.ID })
	if lo.Contains(ids, "") {
		return fmt.Errorf("%w: player with empty id", ErrInvalidInput)
	}
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate player ids %v", ErrInvalidInput, dups)
	}
	known := lo.Associate(t.Players, func(p Player) (string, bool) {
		return p.ID, true
	})

	for r, games := range t.Rounds {
		seen := make(map[string]bool)
		for _, g := range games {
			if g.BlackID == g.WhiteID {
				return fmt.Errorf("%w: round %v: %v paired against itself",
					ErrInvalidInput, r+1, g.BlackID)
			}
			if g.Handicap < 0 {
				return fmt.Errorf("%w: round %v: negative handicap %v",
					ErrInvalidInput, r+1, g.Handicap)
			}
			for _, id := range []string{g.BlackID, g.WhiteID} {
				if !known[id] {
					return fmt.Errorf("%w: round %v: unknown player %v",
						ErrInvalidInput, r+1, id)
				}
				if seen[id] {
					return fmt.Errorf("%w: round %v: %v plays more than once",
						ErrInvalidInput, r+1, id)
				}
				seen[id] = true
			}
		}
	}

	return t.Parameters.Validate()
}

// ActivePlayerIDs returns the sorted ids of every non-bye player.
func (t *Tournament) ActivePlayerIDs() []string {
	ids := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		if !p.IsBye {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)

	return ids
}

// ApplyMcMahonSeeds replaces the seed of every non-bye player with the
// McMahon seed for the given bar and floor.
func (t *Tournament) ApplyMcMahonSeeds(bar, floor int) error {
	for i := range t.Players {
		if t.Players[i].IsBye {
			continue
		}
		seed, err := McMahonSeed(t.Players[i].Rank, bar, floor)
		if err != nil {
			return err
		}
		t.Players[i].Seed = seed
	}

	return nil
}
