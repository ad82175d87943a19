/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/mcmahon-pairings/matching"
	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Pairer produces the games of the next round from the standings after the
// rounds played so far. A Pairer holds no mutable state and may be shared.
type Pairer struct {
	standings *scoring.Standings
	params    tourney.Parameters
	cost      *CostModel
	log       *zap.Logger
	workers   int
}

type Option func(*Pairer)

// WithLogger sets the logger used for solver diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pairer) {
		if l != nil {
			p.log = l
		}
	}
}

// WithWorkers bounds the number of goroutines computing the cost matrix.
func WithWorkers(n int) Option {
	return func(p *Pairer) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New scores the given rounds and returns a Pairer for the round after them.
func New(players []tourney.Player, rounds [][]tourney.Game,
	params tourney.Parameters, opts ...Option) (*Pairer, error) {

	h, err := scoring.Compute(players, rounds)
	if err != nil {
		return nil, err
	}

	return NewFromStandings(h.Latest(), params, opts...)
}

// NewFromStandings returns a Pairer over already computed standings.
func NewFromStandings(st *scoring.Standings, params tourney.Parameters,
	opts ...Option) (*Pairer, error) {

	cost, err := NewCostModel(st, params)
	if err != nil {
		return nil, err
	}
	p := &Pairer{
		standings: st,
		params:    params,
		cost:      cost,
		log:       zap.NewNop(),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Standings returns the standings the Pairer pairs from.
func (p *Pairer) Standings() *scoring.Standings {
	return p.standings
}

// CostModel returns the model used to weight candidate pairings.
func (p *Pairer) CostModel() *CostModel {
	return p.cost
}

// CostMatrix returns the symmetric matrix of pairing costs between ids. The
// diagonal is zero.
func (p *Pairer) CostMatrix(ctx context.Context, ids []string) ([][]int64,
	error) {

	n := len(ids)
	m := make([][]int64, n)
	for i := range m {
		m[i] = make([]int64, n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		row := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := row + 1; j < n; j++ {
				c, err := p.cost.Cost(ids[row], ids[j])
				if err != nil {
					return err
				}
				m[row][j] = c
				m[j][row] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// Pair matches every player in toMatch exactly once and returns the games,
// ordered by black player id. toMatch must have an even number of distinct
// known players; add the bye player to odd sets with tourney.WithBye.
func (p *Pairer) Pair(ctx context.Context, toMatch []string) ([]tourney.Game,
	error) {

	if len(toMatch)%2 != 0 {
		return nil, fmt.Errorf("%w: cannot pair an odd number of players (%v)",
			tourney.ErrInvalidInput, len(toMatch))
	}
	if dups := lo.FindDuplicates(toMatch); len(dups) > 0 {
		return nil, fmt.Errorf("%w: players listed more than once: %v",
			tourney.ErrInvalidInput, dups)
	}
	for _, id := range toMatch {
		if _, ok := p.standings.Player(id); !ok {
			return nil, fmt.Errorf("%w: unknown player %v",
				tourney.ErrInvalidInput, id)
		}
	}
	ids := slices.Clone(toMatch)
	sort.Strings(ids)

	start := time.Now()
	costs, err := p.CostMatrix(ctx, ids)
	if err != nil {
		return nil, err
	}
	graph := matching.NewGraph(len(ids))
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if err := graph.AddEdge(i, j, costs[i][j]); err != nil {
				return nil, err
			}
		}
	}
	costTime := time.Since(start)

	start = time.Now()
	result, err := matching.Perfect(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("unable to match %v players: %w", len(ids), err)
	}
	p.log.Debug("matched players",
		zap.Int("players", len(ids)),
		zap.Duration("cost_time", costTime),
		zap.Duration("solve_time", time.Since(start)),
		zap.Int64("weight", result.Weight))

	games := make([]tourney.Game, 0, len(ids)/2)
	for _, pair := range result.Pairs() {
		a, _ := p.standings.Player(ids[pair[0]])
		b, _ := p.standings.Player(ids[pair[1]])
		if p.standings.HavePlayed(a.ID, b.ID) {
			p.log.Warn("unavoidable rematch",
				zap.String("player", a.ID), zap.String("opponent", b.ID))
		}
		game, err := Assign(a, b, p.params)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].BlackID < games[j].BlackID
	})

	return games, nil
}

// MakePairing pairs toMatch for the round following every round in t.
func MakePairing(ctx context.Context, t *tourney.Tournament, toMatch []string,
	opts ...Option) ([]tourney.Game, error) {

	p, err := New(t.Players, t.Rounds, t.Parameters, opts...)
	if err != nil {
		return nil, err
	}

	return p.Pair(ctx, toMatch)
}
