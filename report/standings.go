/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"
	"strings"

	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

var standingsHeaders = []string{"Place", "Player", "Rank", "Score", "MMS",
	"SOS", "SOSOS", "SODOS", "Up/Down", "Color"}

// BuildStandingsOutput formats standings into an aligned table. Players
// tied on score, SOS and SOSOS share a place. The bye is not listed.
func BuildStandingsOutput(title, date string, st *scoring.Standings) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(title)
		if date != "" {
			sb.WriteString(fmt.Sprintf(" (%v)", date))
		}
		sb.WriteString("\n")
	}
	if st.Round() == 0 {
		sb.WriteString("Standings before Round 1:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n", st.Round()))
	}

	var rows [][]string
	var prior *scoring.Snapshot
	place := 0
	for _, sp := range st.Ranking() {
		if sp.IsBye {
			continue
		}
		place++
		placeText := fmt.Sprintf("%v.", place)
		if prior != nil && tied(prior, sp) {
			placeText = ""
		}
		prior = sp

		rows = append(rows, []string{
			placeText,
			sp.ID,
			tourney.FormatRank(sp.Rank),
			sp.Score().String(),
			sp.MMS().String(),
			sp.SOS.String(),
			sp.SOSOS.String(),
			sp.SODOS.String(),
			fmt.Sprintf("%v/%v", sp.DrawUps, sp.DrawDowns),
			fmt.Sprintf("%+d", sp.ColorBalance),
		})
	}
	if len(rows) == 0 {
		sb.WriteString("No players entered\n")
		return sb.String()
	}
	writeTable(&sb, standingsHeaders, rows)

	return sb.String()
}

func tied(a, b *scoring.Snapshot) bool {
	return a.Score() == b.Score() && a.SOS == b.SOS && a.SOSOS == b.SOSOS
}
