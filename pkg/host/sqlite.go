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

package host

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/item"
)

// Schema is the layout of a host recipe dump. Shape rows are joined with
// newlines. Shaped ingredients carry their key symbol; shapeless ones are
// ordered by position with an empty symbol.
const Schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id            TEXT PRIMARY KEY,
	seq           INTEGER NOT NULL,
	output        TEXT,
	shape         TEXT NOT NULL DEFAULT '',
	requires_ores TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS recipe_ingredients (
	recipe_id  TEXT NOT NULL REFERENCES recipes(id),
	position   INTEGER NOT NULL,
	symbol     TEXT NOT NULL DEFAULT '',
	ingredient TEXT NOT NULL,
	PRIMARY KEY (recipe_id, position)
);
`

// SQLiteSource reads crafting recipes from a host dump.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens the dump at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "open recipe dump", err,
			map[string]any{"path": path})
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "open recipe dump", err,
			map[string]any{"path": path})
	}
	return &SQLiteSource{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Recipes loads every recipe in dump order.
func (s *SQLiteSource) Recipes(ctx context.Context) ([]CraftingRecipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output, shape, requires_ores FROM recipes ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("fetching recipes: %w", err)
	}
	defer rows.Close()

	var recipes []CraftingRecipe
	index := make(map[string]int)
	for rows.Next() {
		var (
			id, shape, ores string
			output          sql.NullString
		)
		if err := rows.Scan(&id, &output, &shape, &ores); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		r := CraftingRecipe{ID: id}
		if output.Valid && output.String != "" {
			out, err := item.Parse(output.String)
			if err != nil {
				return nil, fmt.Errorf("recipe %s output: %w", id, err)
			}
			r.Output = &out
		}
		if shape != "" {
			r.Shape = strings.Split(shape, "\n")
		}
		if ores != "" {
			r.RequiresOres = strings.Split(ores, ",")
		}
		index[id] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}

	if err := s.loadIngredients(ctx, recipes, index); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *SQLiteSource) loadIngredients(ctx context.Context, recipes []CraftingRecipe, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, symbol, ingredient FROM recipe_ingredients ORDER BY recipe_id, position`)
	if err != nil {
		return fmt.Errorf("fetching ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, symbol, text string
		if err := rows.Scan(&id, &symbol, &text); err != nil {
			return fmt.Errorf("scanning ingredient: %w", err)
		}
		i, ok := index[id]
		if !ok {
			return fmt.Errorf("%w: ingredient for unknown recipe %s", ErrInvalidRecipe, id)
		}
		ing, err := ParseIngredient(text)
		if err != nil {
			return fmt.Errorf("recipe %s ingredient: %w", id, err)
		}
		r := &recipes[i]
		if symbol == "" {
			r.Ingredients = append(r.Ingredients, ing)
			continue
		}
		if r.Keys == nil {
			r.Keys = make(map[string]Ingredient)
		}
		r.Keys[symbol] = ing
	}
	return rows.Err()
}

// ExportSQLite writes recipes to a new dump at path in one transaction.
func ExportSQLite(ctx context.Context, path string, recipes []CraftingRecipe) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open recipe dump %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for seq, r := range recipes {
		if err := r.Validate(); err != nil {
			return err
		}
		var output sql.NullString
		if r.Output != nil {
			output = sql.NullString{String: r.Output.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipes (id, seq, output, shape, requires_ores) VALUES (?, ?, ?, ?, ?)`,
			r.ID, seq, output, strings.Join(r.Shape, "\n"), strings.Join(r.RequiresOres, ",")); err != nil {
			return fmt.Errorf("inserting recipe %s: %w", r.ID, err)
		}

		pos := 0
		insert := func(symbol string, ing Ingredient) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_ingredients (recipe_id, position, symbol, ingredient) VALUES (?, ?, ?, ?)`,
				r.ID, pos, symbol, ing.String())
			pos++
			return err
		}
		for _, sym := range sortedSymbols(r.Keys) {
			if err := insert(sym, r.Keys[sym]); err != nil {
				return fmt.Errorf("inserting recipe %s key %s: %w", r.ID, sym, err)
			}
		}
		for _, ing := range r.Ingredients {
			if err := insert("", ing); err != nil {
				return fmt.Errorf("inserting recipe %s ingredient: %w", r.ID, err)
			}
		}
	}
	return tx.Commit()
}
