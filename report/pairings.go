/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

var pairingsHeaders = []string{"Board", "Black", "White", "Handicap"}

// BuildPairingsOutput formats the games of a round into an aligned table.
// Boards are numbered from the game holding the best placed player; the bye
// game comes last without a board.
func BuildPairingsOutput(round int, games []tourney.Game,
	st *scoring.Standings) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", round))
	if len(games) == 0 {
		sb.WriteString("No pairings\n")
		return sb.String()
	}

	order := make(map[string]int)
	for i, sp := range st.Ranking() {
		order[sp.ID] = i
	}
	boardKey := func(g tourney.Game) int {
		if g.Involves(tourney.ByeID) {
			return len(order)
		}
		return min(order[g.BlackID], order[g.WhiteID])
	}
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b tourney.Game) int {
		return boardKey(a) - boardKey(b)
	})

	var rows [][]string
	board := 0
	for _, g := range sorted {
		boardText := ""
		if !g.Involves(tourney.ByeID) {
			board++
			boardText = fmt.Sprintf("%v", board)
		}
		handicap := ""
		if g.Handicap > 0 {
			handicap = fmt.Sprintf("%v", g.Handicap)
		}
		rows = append(rows, []string{
			boardText,
			playerCell(g.BlackID, st),
			playerCell(g.WhiteID, st),
			handicap,
		})
	}
	writeTable(&sb, pairingsHeaders, rows)

	return sb.String()
}

func playerCell(id string, st *scoring.Standings) string {
	sp, ok := st.Player(id)
	if !ok || sp.IsBye {
		return id
	}

	return fmt.Sprintf("%v (%v %v)", id, tourney.FormatRank(sp.Rank),
		sp.Score())
}
