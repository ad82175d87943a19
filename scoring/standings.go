/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Standings is the frozen state of every player after a round together with
// the score groups derived from it. It is safe for concurrent readers.
type Standings struct {
	round   int
	players map[string]*Snapshot
	ranking []*Snapshot

	scores   []tourney.Score
	groupIdx map[tourney.Score]int
	groups   map[tourney.Score][]*Snapshot
	place    map[string]int
}

func newStandings(round int, players map[string]*Snapshot) *Standings {
	st := &Standings{
		round:    round,
		players:  players,
		ranking:  lo.Values(players),
		groupIdx: make(map[tourney.Score]int),
		groups:   make(map[tourney.Score][]*Snapshot),
		place:    make(map[string]int, len(players)),
	}
	slices.SortFunc(st.ranking, compareSnapshots)

	for _, sp := range st.ranking {
		s := sp.Score()
		if _, ok := st.groupIdx[s]; !ok {
			st.groupIdx[s] = len(st.scores)
			st.scores = append(st.scores, s)
		}
		st.place[sp.ID] = len(st.groups[s])
		st.groups[s] = append(st.groups[s], sp)
	}

	return st
}

// compareSnapshots orders by score, MMS, SOS and SOSOS descending and then
// by id.
func compareSnapshots(a, b *Snapshot) int {
	if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.MMS(), a.MMS()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SOS, a.SOS); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SOSOS, a.SOSOS); c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

// Round returns the number of rounds these standings include.
func (st *Standings) Round() int {
	return st.round
}

// Player returns the snapshot of a player.
func (st *Standings) Player(id string) (*Snapshot, bool) {
	sp, ok := st.players[id]

	return sp, ok
}

// Players returns every snapshot ordered by id.
func (st *Standings) Players() []*Snapshot {
	out := lo.Values(st.players)
	slices.SortFunc(out, func(a, b *Snapshot) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out
}

// Ranking returns every snapshot from first to last place.
func (st *Standings) Ranking() []*Snapshot {
	return slices.Clone(st.ranking)
}

// ScoreGroups returns the distinct scores, highest first.
func (st *Standings) ScoreGroups() []tourney.Score {
	return slices.Clone(st.scores)
}

// GroupIndex returns the position of score among the distinct scores, or -1
// if no player holds it.
func (st *Standings) GroupIndex(score tourney.Score) int {
	idx, ok := st.groupIdx[score]
	if !ok {
		return -1
	}

	return idx
}

// Group returns the players holding score in group order.
func (st *Standings) Group(score tourney.Score) []*Snapshot {
	return slices.Clone(st.groups[score])
}

// Place returns the 0-based position of a player within its score group and
// the size of that group.
func (st *Standings) Place(id string) (place int, size int, ok bool) {
	sp, ok := st.players[id]
	if !ok {
		return 0, 0, false
	}

	return st.place[id], len(st.groups[sp.Score()]), true
}

// HavePlayed reports whether the two players met in any counted round. The
// bye player records no opponents, so both sides are checked.
func (st *Standings) HavePlayed(a, b string) bool {
	if sp, ok := st.players[a]; ok && sp.HasPlayed(b) {
		return true
	}
	if sp, ok := st.players[b]; ok && sp.HasPlayed(a) {
		return true
	}

	return false
}
