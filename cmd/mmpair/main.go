/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mikeb26/mcmahon-pairings/config"
	"github.com/mikeb26/mcmahon-pairings/internal"
	"github.com/mikeb26/mcmahon-pairings/loader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

// tool holds what every command needs once the global flags are parsed.
type tool struct {
	cfg *config.Config
	log *zap.Logger
}

func (tl *tool) loaderOptions() loader.Options {
	return loader.Options{
		CacheBucket: tl.cfg.Cache.Bucket,
		Gzip:        tl.cfg.Cache.Gzip,
		MaxAge:      tl.cfg.Cache.MaxAge,
		Logger:      tl.log,
	}
}

func newApp(out io.Writer) *cli.App {
	tl := &tool{log: zap.NewNop()}

	return &cli.App{
		Name:      "mmpair",
		Usage:     "McMahon pairings for go tournaments",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "mmpair.yaml",
				Usage:   "path to the configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log at debug level",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.Bool("verbose") {
				cfg.Log.Level = "debug"
			}
			l, err := internal.NewLogger(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			tl.cfg, tl.log = cfg, l
			return nil
		},
		After: func(c *cli.Context) error {
			// stderr sync fails on some terminals
			_ = tl.log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			tl.pairCommand(),
			tl.standingsCommand(),
			tl.handicapCommand(),
			tl.importRoundCommand(),
			tl.seedCommand(),
		},
	}
}
