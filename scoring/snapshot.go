/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scoring

import (
	"slices"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Opponent is one game recorded on a player's schedule.
type Opponent struct {
	ID    string
	Round int
	Won   bool
}

// Snapshot is the standing of one player after a given round. Snapshots
// handed out by Standings are frozen and must not be modified.
type Snapshot struct {
	tourney.Player

	Points       tourney.Score
	Skips        int
	DrawUps      int
	DrawDowns    int
	ColorBalance int

	SOS   tourney.Score
	SOSOS tourney.Score
	SODOS tourney.Score

	Opponents []Opponent
}

// MMS is the seed plus the points earned over the board.
func (s *Snapshot) MMS() tourney.Score {
	return s.Seed + s.Points
}

// Score is MMS plus half a point for every skipped round.
func (s *Snapshot) Score() tourney.Score {
	return s.MMS() + tourney.Score(s.Skips)
}

// HasPlayed reports whether the player met opponentID in any round.
func (s *Snapshot) HasPlayed(opponentID string) bool {
	return slices.ContainsFunc(s.Opponents, func(o Opponent) bool {
		return o.ID == opponentID
	})
}

func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.Opponents = slices.Clone(s.Opponents)

	return &c
}
