package convert

import (
	"math"
	"sort"
	"testing"

	"reciplease/internal/core/ingredient"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(&Dataset{
		Version: "test",
		Entries: []Entry{
			{Name: "flour", GramsPerCup: 120},
			{Name: "sugar", GramsPerCup: 198},
			{Name: "butter", GramsPerCup: 227},
			{Name: "whole wheat flour", GramsPerCup: 113},
		},
	}, 236.59)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestToGramsWeight(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		name   string
		unit   ingredient.Unit
		amount float64
		want   float64
	}{
		{"chicken breast", ingredient.UnitOunce, 8, 226.8},
		{"beef", ingredient.UnitPound, 0.5, 226.795},
		{"flour", ingredient.UnitGram, 250, 250},
		{"rice", ingredient.UnitKilogram, 1.5, 1500},
	}
	for _, tt := range tests {
		grams, confidence, err := table.ToGrams(tt.name, tt.unit, tt.amount)
		if err != nil {
			t.Fatalf("ToGrams(%q, %q, %v): %v", tt.name, tt.unit, tt.amount, err)
		}
		if grams != tt.want {
			t.Errorf("ToGrams(%q, %q, %v) = %v, want %v", tt.name, tt.unit, tt.amount, grams, tt.want)
		}
		// 重量單位永遠 exact，不經查表
		if confidence != ConfidenceExact {
			t.Errorf("confidence = %q, want exact", confidence)
		}
	}
}

func TestToGramsVolume(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		name       string
		unit       ingredient.Unit
		amount     float64
		want       float64
		confidence Confidence
	}{
		{"flour", ingredient.UnitCup, 1.5, 180, ConfidenceExact},
		{"whole wheat flour", ingredient.UnitCup, 1, 113, ConfidenceExact},
		{"spelt flour", ingredient.UnitCup, 1, 120, ConfidenceGeneric},
		{"sugar", ingredient.UnitTeaspoon, 1, 4.125, ConfidenceExact},
		{"sugar", ingredient.UnitTablespoon, 2, 24.75, ConfidenceExact},
		{"dragonfruit", ingredient.UnitCup, 1, 236.59, ConfidenceDefault},
		{"butter", ingredient.UnitPint, 1, 454, ConfidenceExact},
	}
	for _, tt := range tests {
		grams, confidence, err := table.ToGrams(tt.name, tt.unit, tt.amount)
		if err != nil {
			t.Fatalf("ToGrams(%q, %q, %v): %v", tt.name, tt.unit, tt.amount, err)
		}
		if grams != tt.want {
			t.Errorf("ToGrams(%q, %q, %v) = %v, want %v", tt.name, tt.unit, tt.amount, grams, tt.want)
		}
		if confidence != tt.confidence {
			t.Errorf("ToGrams(%q, %q) confidence = %q, want %q", tt.name, tt.unit, confidence, tt.confidence)
		}
	}
}

func TestToGramsNotConvertible(t *testing.T) {
	table := testTable(t)
	for _, unit := range []ingredient.Unit{"", "clove", "pinch", "slice"} {
		if _, _, err := table.ToGrams("garlic", unit, 2); err == nil {
			t.Errorf("ToGrams with unit %q succeeded, want error", unit)
		}
	}
	if _, _, err := table.ToGrams("flour", ingredient.UnitCup, -1); err == nil {
		t.Error("ToGrams with negative amount succeeded, want error")
	}
}

// 換算對數量是線性的
func TestToGramsLinear(t *testing.T) {
	table := testTable(t)
	base, _, err := table.ToGrams("flour", ingredient.UnitCup, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, factor := range []float64{0.5, 2, 3, 10} {
		scaled, _, err := table.ToGrams("flour", ingredient.UnitCup, factor)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(scaled-base*factor) > 0.001 {
			t.Errorf("ToGrams(%v cups) = %v, want %v", factor, scaled, base*factor)
		}
	}
}

func TestLookupAndKeys(t *testing.T) {
	table := testTable(t)

	entry, ok := table.Lookup("Flour")
	if !ok {
		t.Fatal("Lookup(Flour) missed")
	}
	if entry.GramsPerCup != 120 {
		t.Errorf("GramsPerCup = %v, want 120", entry.GramsPerCup)
	}

	if _, ok := table.Lookup("plutonium"); ok {
		t.Error("Lookup(plutonium) unexpectedly hit")
	}

	keys := table.Keys()
	if len(keys) != 4 {
		t.Fatalf("Keys() len = %d, want 4", len(keys))
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("Keys() not sorted: %v", keys)
	}
	if table.Version() != "test" {
		t.Errorf("Version() = %q, want test", table.Version())
	}
	if table.Len() != 4 {
		t.Errorf("Len() = %d, want 4", table.Len())
	}
}

func TestNewTableValidation(t *testing.T) {
	if _, err := NewTable(&Dataset{Entries: []Entry{{Name: "", GramsPerCup: 1}}}, 236.59); err == nil {
		t.Error("empty entry name accepted")
	}
	if _, err := NewTable(&Dataset{Entries: []Entry{{Name: "flour", GramsPerCup: 0}}}, 236.59); err == nil {
		t.Error("non-positive density accepted")
	}
	if _, err := NewTable(&Dataset{Entries: []Entry{{Name: "flour", GramsPerCup: 120}}}, 0); err == nil {
		t.Error("non-positive default accepted")
	}
}
