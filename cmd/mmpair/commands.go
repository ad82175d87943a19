/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mikeb26/mcmahon-pairings/internal"
	"github.com/mikeb26/mcmahon-pairings/loader"
	"github.com/mikeb26/mcmahon-pairings/pairing"
	"github.com/mikeb26/mcmahon-pairings/report"
	"github.com/mikeb26/mcmahon-pairings/scoring"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

func tournamentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "tournament",
		Aliases:  []string{"t"},
		Usage:    "tournament document: a file, an http(s) url or s3://bucket/key",
		Required: true,
	}
}

func (tl *tool) pairCommand() *cli.Command {
	return &cli.Command{
		Name:  "pair",
		Usage: "pair the next round",
		Flags: []cli.Flag{
			tournamentFlag(),
			&cli.StringSliceFlag{
				Name:  "players",
				Usage: "ids to pair (default: every entered player)",
			},
			&cli.BoolFlag{
				Name:  "auto-bye",
				Usage: "add the bye player when an odd number is to be paired",
			},
			&cli.BoolFlag{
				Name:  "override-params",
				Usage: "pair with the configured parameters instead of the document's",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the games as JSON",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "also write the games to a file or s3://bucket/key",
			},
		},
		Action: tl.pair,
	}
}

func (tl *tool) pair(c *cli.Context) error {
	t, err := loader.Load(c.Context, c.String("tournament"), tl.loaderOptions())
	if err != nil {
		return err
	}
	if c.Bool("override-params") {
		t.Parameters = tl.cfg.Parameters
	}

	toMatch := c.StringSlice("players")
	if len(toMatch) == 0 {
		toMatch = t.ActivePlayerIDs()
	}
	players := t.Players
	if len(toMatch)%2 != 0 {
		if !c.Bool("auto-bye") {
			return fmt.Errorf("%v players to pair; use --auto-bye to add a bye",
				len(toMatch))
		}
		players, toMatch = tourney.WithBye(players, toMatch)
	}

	p, err := pairing.New(players, t.Rounds, t.Parameters,
		pairing.WithLogger(tl.log), pairing.WithWorkers(tl.cfg.Workers))
	if err != nil {
		return err
	}
	games, err := p.Pair(c.Context, toMatch)
	if err != nil {
		return err
	}
	tl.log.Info("paired round", zap.String("tournament", t.Name),
		zap.Int("round", len(t.Rounds)+1), zap.Int("games", len(games)))

	if dst := c.String("save"); dst != "" {
		if err := loader.SavePairings(c.Context, dst, games,
			tl.loaderOptions()); err != nil {
			return err
		}
	}
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}
	fmt.Fprint(c.App.Writer, report.BuildPairingsOutput(len(t.Rounds)+1, games,
		p.Standings()))

	return nil
}

func (tl *tool) standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "show standings after a round",
		Flags: []cli.Flag{
			tournamentFlag(),
			&cli.IntFlag{
				Name:  "round",
				Value: -1,
				Usage: "number of rounds to include (default: all)",
			},
		},
		Action: func(c *cli.Context) error {
			t, err := loader.Load(c.Context, c.String("tournament"),
				tl.loaderOptions())
			if err != nil {
				return err
			}
			h, err := scoring.Compute(t.Players, t.Rounds)
			if err != nil {
				return err
			}
			st := h.Latest()
			if r := c.Int("round"); r >= 0 {
				if st = h.At(r); st == nil {
					return fmt.Errorf("%w: round %v not played (%v rounds)",
						tourney.ErrInvalidInput, r, len(t.Rounds))
				}
			}
			fmt.Fprint(c.App.Writer, report.BuildStandingsOutput(t.Name,
				internal.FormatDate(t.Date), st))
			return nil
		},
	}
}

func (tl *tool) handicapCommand() *cli.Command {
	return &cli.Command{
		Name:  "handicap",
		Usage: "show the handicap between two ranks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lower", Usage: "weaker rank, e.g. 3k",
				Required: true},
			&cli.StringFlag{Name: "higher", Usage: "stronger rank, e.g. 2d",
				Required: true},
		},
		Action: func(c *cli.Context) error {
			lower, err := tourney.ParseRank(c.String("lower"))
			if err != nil {
				return err
			}
			higher, err := tourney.ParseRank(c.String("higher"))
			if err != nil {
				return err
			}
			h, err := pairing.Handicap(lower, higher, tl.cfg.Parameters)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%v vs %v: %v stones\n",
				tourney.FormatRank(lower), tourney.FormatRank(higher), h)
			return nil
		},
	}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "out",
		Usage: "where to write the updated document (default: --tournament)",
	}
}

func (tl *tool) importRoundCommand() *cli.Command {
	return &cli.Command{
		Name:  "import-round",
		Usage: "append a round from a published pairings page",
		Flags: []cli.Flag{
			tournamentFlag(),
			&cli.StringFlag{Name: "html", Usage: "pairings page file or url",
				Required: true},
			outFlag(),
		},
		Action: func(c *cli.Context) error {
			opts := tl.loaderOptions()
			t, err := loader.Load(c.Context, c.String("tournament"), opts)
			if err != nil {
				return err
			}
			games, err := loader.LoadRoundHTML(c.Context, c.String("html"), opts)
			if err != nil {
				return err
			}
			if err := loader.AppendRound(t, games); err != nil {
				return err
			}
			if err := tl.save(c, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "imported %v games as round %v\n",
				len(games), len(t.Rounds))
			return nil
		},
	}
}

func (tl *tool) seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "set McMahon seeds from ranks",
		Flags: []cli.Flag{
			tournamentFlag(),
			&cli.StringFlag{Name: "bar", Usage: "lowest rank of the top group",
				Required: true},
			&cli.StringFlag{Name: "floor", Usage: "rank of the bottom group",
				Required: true},
			outFlag(),
		},
		Action: func(c *cli.Context) error {
			bar, err := tourney.ParseRank(c.String("bar"))
			if err != nil {
				return err
			}
			floor, err := tourney.ParseRank(c.String("floor"))
			if err != nil {
				return err
			}
			t, err := loader.Load(c.Context, c.String("tournament"),
				tl.loaderOptions())
			if err != nil {
				return err
			}
			if err := t.ApplyMcMahonSeeds(bar, floor); err != nil {
				return err
			}
			if err := tl.save(c, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "seeded %v players\n",
				len(t.ActivePlayerIDs()))
			return nil
		},
	}
}

func (tl *tool) save(c *cli.Context, t *tourney.Tournament) error {
	dst := c.String("out")
	if dst == "" {
		dst = c.String("tournament")
	}
	return loader.Save(c.Context, dst, t, tl.loaderOptions())
}
