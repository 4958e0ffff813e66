package storage

import (
	"context"
	"path/filepath"
	"testing"

	"reciplease/internal/pkg/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecipe() *common.RecipeRecord {
	rating := 0.92
	ratings := 41
	return &common.RecipeRecord{
		Domain:  "example.com",
		Path:    "/pancakes",
		Title:   "Pancakes",
		Author:  "jane",
		Rating:  &rating,
		Ratings: &ratings,
		Lines:   []string{"1 cup flour", "2 eggs"},
	}
}

func sampleRecords() []*common.IngredientRecord {
	return []*common.IngredientRecord{
		{
			RawLine:        "1 cup flour",
			Amount:         common.Float64Ptr(1),
			Unit:           "cup",
			UnitFamily:     "volume",
			IngredientName: "flour",
			Modifiers:      []string{},
			Grams:          common.Float64Ptr(120),
			Confidence:     "exact",
		},
		{
			RawLine:        "2 eggs",
			Amount:         common.Float64Ptr(2),
			UnitFamily:     "count",
			IngredientName: "egg",
			Modifiers:      []string{"beaten"},
		},
	}
}

func TestSaveRecipeRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rejected := []common.RejectedLine{
		{Index: 2, Line: "???", Code: common.ErrCodeEmptyIngredientName, Reason: "empty ingredient name"},
	}
	if err := store.SaveRecipe(ctx, sampleRecipe(), sampleRecords(), rejected); err != nil {
		t.Fatal(err)
	}

	got, err := store.RecipeIngredients(ctx, "example.com", "/pancakes")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("RecipeIngredients len = %d, want 2", len(got))
	}

	flour := got[0]
	if flour.IngredientName != "flour" || flour.Unit != "cup" || flour.UnitFamily != "volume" {
		t.Errorf("unexpected first record: %+v", flour)
	}
	if flour.Grams == nil || *flour.Grams != 120 {
		t.Errorf("Grams = %v, want 120", flour.Grams)
	}
	if flour.ID == "" {
		t.Error("ingredient ID not assigned")
	}

	egg := got[1]
	if egg.Grams != nil {
		t.Errorf("count record Grams = %v, want nil", *egg.Grams)
	}
	if len(egg.Modifiers) != 1 || egg.Modifiers[0] != "beaten" {
		t.Errorf("Modifiers = %v, want [beaten]", egg.Modifiers)
	}
}

func TestSaveRecipeOverwrite(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRecipe(ctx, sampleRecipe(), sampleRecords(), nil); err != nil {
		t.Fatal(err)
	}

	// 同一 (domain, path) 再存一次，舊的食材會被覆蓋
	updated := sampleRecipe()
	updated.Title = "Better Pancakes"
	if err := store.SaveRecipe(ctx, updated, sampleRecords()[:1], nil); err != nil {
		t.Fatal(err)
	}

	got, err := store.RecipeIngredients(ctx, "example.com", "/pancakes")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("RecipeIngredients len = %d after overwrite, want 1", len(got))
	}

	var title string
	var count int
	if err := store.db.QueryRow(`SELECT title, (SELECT COUNT(*) FROM recipes) FROM recipes`).Scan(&title, &count); err != nil {
		t.Fatal(err)
	}
	if title != "Better Pancakes" {
		t.Errorf("title = %q, want Better Pancakes", title)
	}
	if count != 1 {
		t.Errorf("recipes count = %d, want 1", count)
	}
}

func TestRangeRecordPersisted(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []*common.IngredientRecord{{
		RawLine:        "1-2 cups sugar",
		Amount:         common.Float64Ptr(1.5),
		AmountLow:      common.Float64Ptr(1),
		AmountHigh:     common.Float64Ptr(2),
		IsRange:        true,
		Unit:           "cup",
		UnitFamily:     "volume",
		IngredientName: "sugar",
		Modifiers:      []string{},
	}}
	if err := store.SaveRecipe(ctx, sampleRecipe(), records, nil); err != nil {
		t.Fatal(err)
	}

	got, err := store.RecipeIngredients(ctx, "example.com", "/pancakes")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	rec := got[0]
	if !rec.IsRange || rec.AmountLow == nil || *rec.AmountLow != 1 ||
		rec.AmountHigh == nil || *rec.AmountHigh != 2 {
		t.Errorf("range not preserved: %+v", rec)
	}
}

func TestRecipeIngredientsMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RecipeIngredients(context.Background(), "example.com", "/missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("RecipeIngredients for missing recipe = %v, want empty", got)
	}
}
