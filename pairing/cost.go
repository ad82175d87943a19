/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"math"

	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Each weight dominates the sum of every term below it.
const (
	UniqueWeight  = 500_000_000_000_000
	ScoreWeight   = 100_000_000_000
	DUDDWeight    = 100_000_000
	SeedingWeight = 5_000_000
	ColorWeight   = 1_000_000
)

// duddDivisor keeps scenario plus both floating coefficients (at most 6)
// inside the draw-up/draw-down weight band.
const duddDivisor = 10

// maxDUDDGap is the largest score difference, in half points, between two
// players that the draw-up/draw-down term still rates.
const maxDUDDGap = 3

// CostModel rates how desirable it is to pair two players given the
// standings before the round. Higher is better.
type CostModel struct {
	standings *scoring.Standings
	params    tourney.Parameters
}

// NewCostModel validates params and returns a cost model over standings.
func NewCostModel(standings *scoring.Standings,
	params tourney.Parameters) (*CostModel, error) {

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &CostModel{standings: standings, params: params}, nil
}

func (c *CostModel) players(a, b string) (*scoring.Snapshot, *scoring.Snapshot,
	error) {

	if a == b {
		return nil, nil, fmt.Errorf("%w: %v paired against itself",
			tourney.ErrInvalidInput, a)
	}
	pa, ok := c.standings.Player(a)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown player %v",
			tourney.ErrInvalidInput, a)
	}
	pb, ok := c.standings.Player(b)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown player %v",
			tourney.ErrInvalidInput, b)
	}

	return pa, pb, nil
}

// Cost returns the edge weight for pairing a with b: one plus the
// uniqueness, color, score and draw-up/draw-down terms, rounded.
func (c *CostModel) Cost(a, b string) (int64, error) {
	total := 1.0
	for _, term := range []func(string, string) (float64, error){
		c.UniquenessTerm,
		c.ColorTerm,
		c.ScoreTerm,
		c.DUDDTerm,
	} {
		v, err := term(a, b)
		if err != nil {
			return 0, fmt.Errorf("unable to compute cost of %v-%v: %w",
				a, b, err)
		}
		total += v
	}

	return int64(math.Round(total)), nil
}

// UniquenessTerm is UniqueWeight unless the players already met.
func (c *CostModel) UniquenessTerm(a, b string) (float64, error) {
	if _, _, err := c.players(a, b); err != nil {
		return 0, err
	}
	if c.standings.HavePlayed(a, b) {
		return 0, nil
	}

	return UniqueWeight, nil
}

// ColorTerm rewards pairings that even out color balance. Handicap games
// do not count towards color balance and rate 0.
func (c *CostModel) ColorTerm(a, b string) (float64, error) {
	pa, pb, err := c.players(a, b)
	if err != nil {
		return 0, err
	}
	if pa.IsBye || pb.IsBye {
		return 0, nil
	}
	lower, higher := pa.Rank, pb.Rank
	if lower > higher {
		lower, higher = higher, lower
	}
	h, err := Handicap(lower, higher, c.params)
	if err != nil {
		return 0, err
	}
	if h > 0 {
		return 0, nil
	}

	ca, cb := pa.ColorBalance, pb.ColorBalance
	switch {
	case ca*cb < 0:
		return ColorWeight, nil
	case ca*cb == 0 && abs(ca+cb) > 1:
		return 0.5 * ColorWeight, nil
	}

	return 0, nil
}

// ScoreTerm falls off with the distance between the players' score groups.
func (c *CostModel) ScoreTerm(a, b string) (float64, error) {
	pa, pb, err := c.players(a, b)
	if err != nil {
		return 0, err
	}
	groups := len(c.standings.ScoreGroups())
	ga := c.standings.GroupIndex(pa.Score())
	gb := c.standings.GroupIndex(pb.Score())
	x := float64(abs(ga-gb)) / float64(groups)

	return (1 - x) * (1 + x/2) * ScoreWeight, nil
}

// DUDDTerm rates players of equal score by seeding and players of close
// scores by how fair drawing one up and the other down would be.
func (c *CostModel) DUDDTerm(a, b string) (float64, error) {
	pa, pb, err := c.players(a, b)
	if err != nil {
		return 0, err
	}

	if pa.Score() == pb.Score() {
		ia, size, _ := c.standings.Place(a)
		ib, _, _ := c.standings.Place(b)
		k, err := SeedingCoefficient(ia, ib, size, c.params.SeedingMode)
		if err != nil {
			return 0, err
		}
		return k * SeedingWeight, nil
	}
	if abs(int(pa.Score()-pb.Score())) > maxDUDDGap {
		return 0, nil
	}

	weaker, stronger := pa, pb
	if weaker.Score() > stronger.Score() {
		weaker, stronger = stronger, weaker
	}
	scenario := c.duddScenario(weaker, stronger)

	place, size, _ := c.standings.Place(weaker.ID)
	up, err := FloatingCoefficient(place, size, c.params.FloatUpMode)
	if err != nil {
		return 0, err
	}
	place, size, _ = c.standings.Place(stronger.ID)
	down, err := FloatingCoefficient(place, size, c.params.FloatDownMode)
	if err != nil {
		return 0, err
	}

	return (float64(scenario) + up + down) / duddDivisor * DUDDWeight, nil
}

// duddScenario starts from 2 and loses a point for drawing up a player who
// was already drawn up and for drawing down one already drawn down. With
// compensation on, players owed a draw in this direction win it back.
func (c *CostModel) duddScenario(weaker, stronger *scoring.Snapshot) int {
	scenario := 2
	if weaker.DrawUps > 0 {
		scenario--
	}
	if stronger.DrawDowns > 0 {
		scenario--
	}
	if scenario > 0 && c.params.DUDDCompensate {
		if weaker.DrawUps < weaker.DrawDowns {
			scenario++
		}
		if stronger.DrawDowns < stronger.DrawUps {
			scenario++
		}
	}
	if !c.params.DUDDCompensate {
		scenario = min(scenario, 2)
	}

	return scenario
}
