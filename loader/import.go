/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// ImportRoundHTML reads the games of one round from a published pairings
// page. Rows of every table.pairings are read as board, black, white,
// handicap and result cells; header rows are skipped.
func ImportRoundHTML(r io.Reader) ([]tourney.Game, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pairings page: %w", err)
	}

	tables := doc.Find("table.pairings")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("%w: no pairings table found",
			tourney.ErrInvalidInput)
	}

	var games []tourney.Game
	var rowErr error
	tables.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		game, ok, err := parseGameRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		if ok {
			games = append(games, game)
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return games, nil
}

// LoadRoundHTML fetches a pairings page from an http(s) url or a local file
// and imports its games.
func LoadRoundHTML(ctx context.Context, location string,
	opts Options) ([]tourney.Game, error) {

	if isHTTP(location) {
		body, err := fetch(ctx, location, opts)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("unable to read %v: %w", location, err)
		}
		return ImportRoundHTML(bytes.NewReader(data))
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("unable to open pairings page: %w", err)
	}
	defer f.Close()

	return ImportRoundHTML(f)
}

// AppendRound adds games as the next round of t. The bye player is added to
// the roster when a game references it.
func AppendRound(t *tourney.Tournament, games []tourney.Game) error {
	usesBye := lo.ContainsBy(games, func(g tourney.Game) bool {
		return g.Involves(tourney.ByeID)
	})
	hasBye := lo.ContainsBy(t.Players, func(p tourney.Player) bool {
		return p.ID == tourney.ByeID
	})

	next := *t
	if usesBye && !hasBye {
		next.Players = append(append([]tourney.Player(nil), t.Players...),
			tourney.Bye())
	}
	next.Rounds = append(append([][]tourney.Game(nil), t.Rounds...), games)
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next

	return nil
}

// parseGameRow returns ok=false for rows that are not games.
func parseGameRow(row *goquery.Selection) (tourney.Game, bool, error) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return tourney.Game{}, false, nil
	}
	boardText := strings.TrimSpace(cells.Eq(0).Text())
	if _, err := strconv.Atoi(boardText); err != nil {
		return tourney.Game{}, false, nil
	}

	game := tourney.Game{
		BlackID: parsePlayerRef(cells.Eq(1).Text()),
		WhiteID: parsePlayerRef(cells.Eq(2).Text()),
	}
	if game.BlackID == "" || game.WhiteID == "" {
		return tourney.Game{}, false, fmt.Errorf("%w: board %v: missing player",
			tourney.ErrInvalidInput, boardText)
	}

	h, err := parseHandicap(cells.Eq(3).Text())
	if err != nil {
		return tourney.Game{}, false, fmt.Errorf("%w: board %v: handicap %q",
			tourney.ErrInvalidInput, boardText, cells.Eq(3).Text())
	}
	game.Handicap = h

	res, err := parseResult(cells.Eq(4).Text())
	if err != nil {
		return tourney.Game{}, false, fmt.Errorf("board %v: %w", boardText, err)
	}
	game.Result = res

	return game, true, nil
}

// parsePlayerRef extracts the player id from a cell like "kato (3k)".
func parsePlayerRef(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "("); i != -1 {
		text = strings.TrimSpace(text[:i])
	}
	if strings.EqualFold(text, tourney.ByeID) {
		return tourney.ByeID
	}
	return text
}

func parseHandicap(text string) (int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "H"), "h")
	if text == "" || text == "-" {
		return 0, nil
	}
	return strconv.Atoi(text)
}

// parseResult reads Go notation (B+R, W+3.5, jigo) and score notation in
// column order, black first (1-0, 0-1, ½-½, 1-1, 0-0).
func parseResult(text string) (tourney.Result, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), ""))
	switch {
	case s == "" || s == "?" || s == "-":
		return tourney.ResultUnknown, nil
	case strings.HasPrefix(s, "b+"):
		return tourney.ResultBlackWins, nil
	case strings.HasPrefix(s, "w+"):
		return tourney.ResultWhiteWins, nil
	}

	switch s {
	case "1-0":
		return tourney.ResultBlackWins, nil
	case "0-1":
		return tourney.ResultWhiteWins, nil
	case "½-½", "0.5-0.5", "jigo", "draw", "=":
		return tourney.ResultDraw, nil
	case "1-1":
		return tourney.ResultBothWin, nil
	case "0-0":
		return tourney.ResultBothLose, nil
	}

	return tourney.ResultUnknown, fmt.Errorf("%w: result %q",
		tourney.ErrInvalidInput, strings.TrimSpace(text))
}
