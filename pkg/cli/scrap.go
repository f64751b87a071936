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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/blockartistry/recycler/pkg/events"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// RollReport lists the results of repeated scrap or harvest rolls.
type RollReport struct {
	Item      item.Stack     `json:"item" yaml:"item"`
	Core      string         `json:"core,omitempty" yaml:"core,omitempty"`
	Fortune   int            `json:"fortune,omitempty" yaml:"fortune,omitempty"`
	SilkTouch bool           `json:"silkTouch,omitempty" yaml:"silkTouch,omitempty"`
	Handled   int            `json:"handled,omitempty" yaml:"handled,omitempty"`
	Rolls     [][]item.Stack `json:"rolls" yaml:"rolls"`
}

func countFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Value:   1,
		Usage:   "Number of rolls",
	}
}

func rollCount(cmd *cli.Command) (int, error) {
	n := cmd.Int("count")
	if n < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", n)
	}
	return n, nil
}

func scrapCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scrap",
		EnableShellCompletion: true,
		Usage:                 "Roll the scrap tables for an item",
		Description: `Scrap one unit of an item per roll with the given processing core.
Items blocked from scrapping come back unchanged.`,
		Flags: []cli.Flag{
			itemFlag(),
			&cli.StringFlag{
				Name:  "core",
				Value: strings.ToLower(scrap.CoreDecomposition.String()),
				Usage: fmt.Sprintf("Processing core (supported values: %s)", supportedCores()),
			},
			countFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			target, err := parseItemFlag(cmd)
			if err != nil {
				return err
			}
			core, err := scrap.ParseCore(cmd.String("core"))
			if err != nil {
				return fmt.Errorf("core: %q, supported values: %s", cmd.String("core"), supportedCores())
			}
			n, err := rollCount(cmd)
			if err != nil {
				return err
			}

			s, err := run(ctx, cmd)
			if err != nil {
				return err
			}

			target = target.WithQuantity(1)
			report := RollReport{Item: target, Core: core.String()}
			for range n {
				report.Rolls = append(report.Rolls, s.plugin.Scrap(core, target))
			}
			return serialize(ctx, cmd, report)
		},
	}
}

func harvestCmd() *cli.Command {
	return &cli.Command{
		Name:                  "harvest",
		EnableShellCompletion: true,
		Usage:                 "Simulate harvesting a block",
		Description: `Dispatch a harvest event for a block through the registered hooks and
report the resulting drops. A rubble pile drops weighted scrap instead of
itself unless harvested with silk touch.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "block",
				Aliases:  []string{"b"},
				Usage:    "Harvested block in modid:path[:meta] form",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "fortune",
				Usage: "Fortune enchantment level",
			},
			&cli.BoolFlag{
				Name:  "silk-touch",
				Usage: "Harvest with silk touch",
			},
			countFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			block, err := item.Parse(cmd.String("block"))
			if err != nil {
				return fmt.Errorf("invalid block %q: %w", cmd.String("block"), err)
			}
			n, err := rollCount(cmd)
			if err != nil {
				return err
			}

			s, err := run(ctx, cmd)
			if err != nil {
				return err
			}

			block = block.WithQuantity(1)
			report := RollReport{
				Item:      block,
				Fortune:   cmd.Int("fortune"),
				SilkTouch: cmd.Bool("silk-touch"),
			}
			for range n {
				ev := &events.HarvestEvent{
					Block:     block,
					Drops:     []item.Stack{block},
					Fortune:   report.Fortune,
					SilkTouch: report.SilkTouch,
				}
				report.Handled += s.plugin.Harvest(ev)
				report.Rolls = append(report.Rolls, ev.Drops)
			}
			return serialize(ctx, cmd, report)
		},
	}
}

func supportedCores() string {
	names := make([]string, 0, len(scrap.Cores()))
	for _, c := range scrap.Cores() {
		names = append(names, strings.ToLower(c.String()))
	}
	return strings.Join(names, ", ")
}
