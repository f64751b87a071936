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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/blockartistry/recycler/pkg/host"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "export",
		EnableShellCompletion: true,
		Usage:                 "Export the data pack crafting recipes to a SQLite recipe dump",
		Description: `Write the crafting recipes of every loaded data pack to a SQLite database
in the layout read by --recipes. Useful for seeding a host recipe dump:

  recycler export --db recipes.db
  recycler --recipes recipes.db scan`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "Destination database file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := newSession(ctx, cmd)
			if err != nil {
				return err
			}

			path := cmd.String("db")
			if err := host.ExportSQLite(ctx, path, s.pack.Crafting); err != nil {
				return fmt.Errorf("exporting recipes: %w", err)
			}
			slog.Info("exported crafting recipes", "path", path, "count", len(s.pack.Crafting))
			return nil
		},
	}
}
