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
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

func diagCmd() *cli.Command {
	return &cli.Command{
		Name:                  "diag",
		EnableShellCompletion: true,
		Usage:                 "Write the recycling recipe diagnostic",
		Description: `Run the full pipeline and write every recycling recipe, sorted by input,
one per line:

  [1x Anvil] => [20x Iron Ingot]`,
		Flags: []cli.Flag{
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := run(ctx, cmd)
			if err != nil {
				return err
			}

			path := strings.TrimSpace(cmd.String("output"))
			if path == "" {
				return s.plugin.WriteDiagnostic(cmd.Root().Writer)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating diagnostic file %s: %w", path, err)
			}
			defer func() {
				if err := f.Close(); err != nil {
					slog.Warn("failed to close diagnostic file", "error", err)
				}
			}()
			return s.plugin.WriteDiagnostic(f)
		},
	}
}
