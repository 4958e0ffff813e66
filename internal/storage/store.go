package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"reciplease/internal/pkg/common"
)

// 啟動時一次套用的冪等 schema
const schema = `
CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  domain TEXT NOT NULL,
  path TEXT NOT NULL,
  title TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  servings TEXT NOT NULL DEFAULT '',
  rating REAL CHECK(rating >= 0 AND rating <= 1),
  ratings INTEGER CHECK(ratings >= 0),
  make_again REAL CHECK(make_again >= 0 AND make_again <= 1),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(domain, path)
);

CREATE TABLE IF NOT EXISTS ingredients (
  id TEXT PRIMARY KEY,
  recipe_id TEXT,
  raw_line TEXT NOT NULL,
  amount REAL,
  amount_low REAL,
  amount_high REAL,
  is_range INTEGER NOT NULL DEFAULT 0,
  unit TEXT NOT NULL DEFAULT '',
  unit_family TEXT NOT NULL,
  ingredient_name TEXT NOT NULL,
  modifiers_json TEXT NOT NULL DEFAULT '[]',
  grams REAL CHECK(grams >= 0),
  confidence TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_ingredients_recipe_id ON ingredients(recipe_id);
CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(ingredient_name);

CREATE TABLE IF NOT EXISTS rejected_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  recipe_id TEXT,
  line_index INTEGER NOT NULL,
  raw_line TEXT NOT NULL,
  code TEXT NOT NULL,
  reason TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_rejected_lines_recipe_id ON rejected_lines(recipe_id);
`

// Store SQLite 持久層
type Store struct {
	db *sql.DB
}

// Open 開啟資料庫並套用 schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRecipe 在單一交易內寫入食譜、食材與拒收行
// 同一 (domain, path) 重複寫入時整份覆蓋
func (s *Store) SaveRecipe(ctx context.Context, recipe *common.RecipeRecord, records []*common.IngredientRecord, rejected []common.RejectedLine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	recipeID, err := upsertRecipe(ctx, tx, recipe)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	// 覆蓋舊的解析結果
	if _, err := tx.ExecContext(ctx, `DELETE FROM ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rejected_lines WHERE recipe_id = ?`, recipeID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear recipe rejected lines: %w", err)
	}

	for _, record := range records {
		if err := insertIngredient(ctx, tx, recipeID, record); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	for _, reject := range rejected {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO rejected_lines(recipe_id, line_index, raw_line, code, reason)
VALUES(?, ?, ?, ?, ?)`,
			recipeID, reject.Index, reject.Line, reject.Code, reject.Reason); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert rejected line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recipe transaction: %w", err)
	}
	return nil
}

func upsertRecipe(ctx context.Context, tx *sql.Tx, recipe *common.RecipeRecord) (string, error) {
	var existingID string
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM recipes WHERE domain = ? AND path = ?`,
		recipe.Domain, recipe.Path).Scan(&existingID)
	if err == nil {
		if _, err := tx.ExecContext(ctx, `
UPDATE recipes SET title = ?, author = ?, description = ?, servings = ?, rating = ?, ratings = ?, make_again = ?
WHERE id = ?`,
			recipe.Title, recipe.Author, recipe.Description, recipe.Servings,
			recipe.Rating, recipe.Ratings, recipe.MakeAgain, existingID); err != nil {
			return "", fmt.Errorf("update recipe: %w", err)
		}
		return existingID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("look up recipe: %w", err)
	}

	id := common.GenerateUUID()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO recipes(id, domain, path, title, author, description, servings, rating, ratings, make_again)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, recipe.Domain, recipe.Path, recipe.Title, recipe.Author,
		recipe.Description, recipe.Servings, recipe.Rating, recipe.Ratings, recipe.MakeAgain); err != nil {
		return "", fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

func insertIngredient(ctx context.Context, tx *sql.Tx, recipeID string, record *common.IngredientRecord) error {
	modifiers, err := json.Marshal(record.Modifiers)
	if err != nil {
		return fmt.Errorf("marshal modifiers: %w", err)
	}

	id := record.ID
	if id == "" {
		id = common.GenerateUUID()
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO ingredients(id, recipe_id, raw_line, amount, amount_low, amount_high, is_range,
  unit, unit_family, ingredient_name, modifiers_json, grams, confidence)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, recipeID, record.RawLine, record.Amount, record.AmountLow, record.AmountHigh,
		boolToInt(record.IsRange), record.Unit, record.UnitFamily, record.IngredientName,
		string(modifiers), record.Grams, record.Confidence); err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// RecipeIngredients 讀回指定食譜的食材記錄
func (s *Store) RecipeIngredients(ctx context.Context, domain, path string) ([]*common.IngredientRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT i.id, i.raw_line, i.amount, i.amount_low, i.amount_high, i.is_range,
  i.unit, i.unit_family, i.ingredient_name, i.modifiers_json, i.grams, i.confidence
FROM ingredients i
JOIN recipes r ON r.id = i.recipe_id
WHERE r.domain = ? AND r.path = ?
ORDER BY i.rowid`, domain, path)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var records []*common.IngredientRecord
	for rows.Next() {
		var record common.IngredientRecord
		var isRange int
		var modifiersJSON string
		if err := rows.Scan(&record.ID, &record.RawLine, &record.Amount, &record.AmountLow,
			&record.AmountHigh, &isRange, &record.Unit, &record.UnitFamily,
			&record.IngredientName, &modifiersJSON, &record.Grams, &record.Confidence); err != nil {
			return nil, fmt.Errorf("scan ingredient row: %w", err)
		}
		record.IsRange = isRange != 0
		if err := json.Unmarshal([]byte(modifiersJSON), &record.Modifiers); err != nil {
			return nil, fmt.Errorf("unmarshal modifiers: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredient rows: %w", err)
	}
	return records, nil
}

// Close 關閉資料庫
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
