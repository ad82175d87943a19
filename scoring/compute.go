/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scoring

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// History holds the standings of a tournament after each round. At(0) is
// the baseline before any game was played.
type History struct {
	standings []*Standings
}

// Len returns the number of rounds folded into the history.
func (h *History) Len() int {
	return len(h.standings) - 1
}

// At returns the standings after the given number of rounds.
func (h *History) At(round int) *Standings {
	if round < 0 || round >= len(h.standings) {
		return nil
	}

	return h.standings[round]
}

// Latest returns the standings after every round.
func (h *History) Latest() *Standings {
	return h.standings[len(h.standings)-1]
}

// Compute folds the games of each round, in order, into per-round
// standings. Every round is built from the frozen standings of the previous
// one so the order of players and games within a round has no effect.
func Compute(players []tourney.Player,
	rounds [][]tourney.Game) (*History, error) {

	if err := validate(players, rounds); err != nil {
		return nil, err
	}

	prev := make(map[string]*Snapshot, len(players))
	for _, p := range players {
		prev[p.ID] = &Snapshot{Player: p}
	}
	h := &History{standings: []*Standings{newStandings(0, prev)}}

	for r, games := range rounds {
		byPlayer := make(map[string]tourney.Game, 2*len(games))
		for _, g := range games {
			byPlayer[g.BlackID] = g
			byPlayer[g.WhiteID] = g
		}

		next := make(map[string]*Snapshot, len(prev))
		for id, before := range prev {
			sp := before.clone()
			next[id] = sp
			if sp.IsBye {
				continue
			}

			g, ok := byPlayer[id]
			if !ok {
				sp.Skips++
				continue
			}
			oppID, _ := g.Opponent(id)
			opp := prev[oppID]
			if opp.IsBye {
				sp.Points += 2
				sp.Opponents = append(sp.Opponents,
					Opponent{ID: oppID, Round: r, Won: true})
				continue
			}

			switch {
			case before.Score() < opp.Score():
				sp.DrawUps++
			case before.Score() > opp.Score():
				sp.DrawDowns++
			}
			sp.Points += g.PointsFor(id)
			sp.ColorBalance += g.ColorBalanceFor(id)
			sp.Opponents = append(sp.Opponents,
				Opponent{ID: oppID, Round: r, Won: g.Won(id)})
		}

		computeOpponentScores(next)
		h.standings = append(h.standings, newStandings(r+1, next))
		prev = next
	}

	return h, nil
}

// computeOpponentScores fills SOS, SOSOS and SODOS from the scores held in
// snapshots. A bye opponent counts as the player's own score (or own SOS).
func computeOpponentScores(snaps map[string]*Snapshot) {
	for _, sp := range snaps {
		sp.SOS, sp.SODOS = 0, 0
		for _, o := range sp.Opponents {
			opp := snaps[o.ID]
			s := opp.Score()
			if opp.IsBye {
				s = sp.Score()
			}
			sp.SOS += s
			if o.Won {
				sp.SODOS += s
			}
		}
	}
	for _, sp := range snaps {
		sp.SOSOS = 0
		for _, o := range sp.Opponents {
			opp := snaps[o.ID]
			if opp.IsBye {
				sp.SOSOS += sp.SOS
			} else {
				sp.SOSOS += opp.SOS
			}
		}
	}
}

func validate(players []tourney.Player, rounds [][]tourney.Game) error {
	ids := lo.Map(players, func(p tourney.Player, _ int) string {
		return p.ID
	})
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate player ids %v",
			tourney.ErrInvalidInput, dups)
	}
	known := lo.Associate(players, func(p tourney.Player) (string, bool) {
		return p.ID, true
	})

	for r, games := range rounds {
		seen := make(map[string]bool, 2*len(games))
		for _, g := range games {
			if g.BlackID == g.WhiteID {
				return fmt.Errorf("%w: round %v: %v paired against itself",
					tourney.ErrInvalidInput, r+1, g.BlackID)
			}
			for _, id := range []string{g.BlackID, g.WhiteID} {
				if !known[id] {
					return fmt.Errorf("%w: round %v: unknown player %v",
						tourney.ErrInvalidInput, r+1, id)
				}
				if seen[id] {
					return fmt.Errorf("%w: round %v: %v plays more than once",
						tourney.ErrInvalidInput, r+1, id)
				}
				seen[id] = true
			}
		}
	}

	return nil
}
