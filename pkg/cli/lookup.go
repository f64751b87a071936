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

	"github.com/urfave/cli/v3"
)

func lookupCmd() *cli.Command {
	return &cli.Command{
		Name:                  "lookup",
		EnableShellCompletion: true,
		Usage:                 "Describe one item",
		Description: `Report what the recycler knows about an item:
  - Display name and maximum stack size
  - Ore dictionary names
  - Scrap value, compost type and blocking flags
  - The matched recycling recipe and its minimum input quantity
  - The extraction table

A variant without a recipe of its own falls back to the wildcard recipe.`,
		Flags: []cli.Flag{
			itemFlag(),
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

			s, err := run(ctx, cmd)
			if err != nil {
				return err
			}

			report := s.plugin.Describe(target)
			report.Metadata["version"] = version
			return serialize(ctx, cmd, report)
		},
	}
}

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scan",
		EnableShellCompletion: true,
		Usage:                 "Scan the host crafting recipes and report the outcome",
		Description: `Run the full pipeline and report how many crafting recipes were
registered, skipped as duplicates, skipped as ineligible or failed, per pass.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			s, err := run(ctx, cmd)
			if err != nil {
				return err
			}

			s.report.Metadata["version"] = version
			return serialize(ctx, cmd, s.report)
		},
	}
}
