// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const (
	name           = "recycler"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the recycler command line and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Usage:                 "Recycling recipe registry for the Thermal Recycling mod",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `Builds the recycling tables the mod uses at runtime:

  1. Loads the built-in data pack plus any packs found in --data directories
  2. Applies item data, ore dictionary entries, extraction and scrap tables
  3. Runs tweaker scripts from scripts_dir and --script
  4. Scans the host crafting recipes (--recipes) into recycling recipes
  5. Freezes every table

Each command then reports on the frozen tables.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file (default: .recycler.yaml in $HOME or the working directory)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringSliceFlag{
				Name:  "data",
				Usage: "Directory with extra data packs (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "script",
				Usage: "Tweaker script to run before the recipe scan (can be repeated)",
			},
			&cli.StringFlag{
				Name:  "recipes",
				Usage: "SQLite dump of the host crafting recipes",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics to this file after the scan",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for scrap and rubble rolls (default: random)",
			},
		},
		Commands: []*cli.Command{
			diagCmd(),
			lookupCmd(),
			scanCmd(),
			scrapCmd(),
			harvestCmd(),
			exportCmd(),
			versionCmd(),
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\ncommit: %s\nbuilt:  %s\n", name, version, commit, date)
			return err
		},
	}
}
