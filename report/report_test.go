/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

var players = []tourney.Player{
	{ID: "a", Rank: 1, Seed: 4},
	{ID: "b", Rank: 0, Seed: 4},
	{ID: "c", Rank: -1, Seed: 2},
	{ID: "d", Rank: -3, Seed: 0},
}

var rounds = [][]tourney.Game{{
	{BlackID: "a", WhiteID: "b", Result: tourney.ResultBlackWins},
	{BlackID: "c", WhiteID: "d", Handicap: 2, Result: tourney.ResultBlackWins},
}}

func history(t *testing.T) *scoring.History {
	t.Helper()
	h, err := scoring.Compute(players, rounds)
	require.NoError(t, err)
	return h
}

func TestBuildStandingsOutput(t *testing.T) {
	want := `Spring Open (2026-04-18)
Standings after Round 1:

Place  Player  Rank  Score  MMS  SOS  SOSOS  SODOS  Up/Down  Color
1.     a       2d    3      3    2    3      2      0/0      -1
2.     b       1d    2      2    3    2      0      0/0      +1
3.     c       1k    2      2    0    2      0      0/1      +0
4.     d       3k    0      0    2    0      0      1/0      +0
`
	got := BuildStandingsOutput("Spring Open", "2026-04-18", history(t).Latest())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStandingsOutputTies(t *testing.T) {
	want := `Standings before Round 1:

Place  Player  Rank  Score  MMS  SOS  SOSOS  SODOS  Up/Down  Color
1.     a       2d    2      2    0    0      0      0/0      +0
       b       1d    2      2    0    0      0      0/0      +0
3.     c       1k    1      1    0    0      0      0/0      +0
4.     d       3k    0      0    0    0      0      0/0      +0
`
	got := BuildStandingsOutput("", "", history(t).At(0))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStandingsOutputSkipsBye(t *testing.T) {
	h, err := scoring.Compute(append([]tourney.Player{tourney.Bye()},
		players[:1]...), nil)
	require.NoError(t, err)

	out := BuildStandingsOutput("", "", h.Latest())
	assert.NotContains(t, out, tourney.ByeID)
	assert.Contains(t, out, "1.     a")

	empty, err := scoring.Compute(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, BuildStandingsOutput("", "", empty.Latest()),
		"No players entered")
}

func TestBuildPairingsOutput(t *testing.T) {
	games := []tourney.Game{
		{BlackID: "b", WhiteID: "c"},
		{BlackID: "d", WhiteID: "a", Handicap: 4},
	}
	want := `Round 2 Pairings:

Board  Black     White     Handicap
1      d (3k 0)  a (2d 3)  4
2      b (1d 2)  c (1k 2)
`
	got := BuildPairingsOutput(2, games, history(t).Latest())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPairingsOutputBye(t *testing.T) {
	games := []tourney.Game{
		{BlackID: tourney.ByeID, WhiteID: "a"},
		{BlackID: "b", WhiteID: "c"},
	}
	out := BuildPairingsOutput(2, games, history(t).Latest())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "1      b (1d 2)"), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "       BYE"), lines[4])

	assert.Contains(t, BuildPairingsOutput(3, nil, history(t).Latest()),
		"No pairings")
}

func TestWriteTableCountsRunes(t *testing.T) {
	var sb strings.Builder
	writeTable(&sb, []string{"Score", "Player"}, [][]string{
		{"1½", "x"},
		{"12½", "y"},
	})
	assert.Equal(t, "Score  Player\n1½     x\n12½    y\n", sb.String())
}
