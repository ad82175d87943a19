/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"strings"
)

// Result represents the outcome of a game.
type Result int

const (
	ResultUnknown Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
	ResultBothWin
	ResultBothLose
)

var resultNames = map[Result]string{
	ResultUnknown:   "unknown",
	ResultWhiteWins: "white_wins",
	ResultBlackWins: "black_wins",
	ResultDraw:      "draw",
	ResultBothWin:   "both_win",
	ResultBothLose:  "both_lose",
}

func (r Result) String() string {
	if n, ok := resultNames[r]; ok {
		return n
	}

	return "?"
}

func (r Result) MarshalText() ([]byte, error) {
	n, ok := resultNames[r]
	if !ok {
		return nil, fmt.Errorf("%w: result %d", ErrInvalidInput, int(r))
	}

	return []byte(n), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "unknown", "unspecified":
		*r = ResultUnknown
	case "white_wins":
		*r = ResultWhiteWins
	case "black_wins":
		*r = ResultBlackWins
	case "draw":
		*r = ResultDraw
	case "both_win", "both_wins":
		*r = ResultBothWin
	case "both_lose":
		*r = ResultBothLose
	default:
		return fmt.Errorf("%w: result %q", ErrInvalidInput, string(text))
	}

	return nil
}

// Game is one board of one round. Games are values: a corrected result is a
// new Game, never an edit of a recorded one.
type Game struct {
	BlackID  string `json:"black_id"`
	WhiteID  string `json:"white_id"`
	Handicap int    `json:"handicap"`
	Result   Result `json:"result"`

	// IgnoreColor excludes the game from color balance even without handicap.
	IgnoreColor bool `json:"ignore_color,omitempty"`
}

// Involves reports whether the player took part in the game.
func (g Game) Involves(playerID string) bool {
	return g.BlackID == playerID || g.WhiteID == playerID
}

// Opponent returns the other side of the game for playerID.
func (g Game) Opponent(playerID string) (string, bool) {
	switch playerID {
	case g.BlackID:
		return g.WhiteID, true
	case g.WhiteID:
		return g.BlackID, true
	}

	return "", false
}

// PointsFor returns the half points earned by playerID.
func (g Game) PointsFor(playerID string) Score {
	if !g.Involves(playerID) {
		return 0
	}
	switch g.Result {
	case ResultBothWin:
		return 2
	case ResultWhiteWins:
		if g.WhiteID == playerID {
			return 2
		}
	case ResultBlackWins:
		if g.BlackID == playerID {
			return 2
		}
	case ResultDraw:
		return 1
	}

	return 0
}

// Won reports whether playerID earned a full point from the game.
func (g Game) Won(playerID string) bool {
	return g.PointsFor(playerID) == 2
}

// ColorBalanceFor is +1 for white, -1 for black and 0 for games that do not
// count towards color balance.
func (g Game) ColorBalanceFor(playerID string) int {
	if g.Handicap > 0 || g.IgnoreColor {
		return 0
	}
	switch playerID {
	case g.WhiteID:
		return 1
	case g.BlackID:
		return -1
	}

	return 0
}
