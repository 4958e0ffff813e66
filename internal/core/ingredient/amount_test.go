package ingredient

import (
	"errors"
	"testing"
)

func TestResolveAmountSingle(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		want     float64
		consumed int
	}{
		{"integer", []string{"2", "cups"}, 2, 1},
		{"decimal", []string{"0.75", "cup"}, 0.75, 1},
		{"fraction", []string{"1/2", "cup"}, 0.5, 1},
		{"unicode fraction", []string{"½", "cup"}, 0.5, 1},
		{"mixed", []string{"1", "1/2", "cups"}, 1.5, 2},
		{"fused unicode mixed", []string{"1½", "cups"}, 1.5, 1},
		{"hyphen mixed", []string{"3-1/2", "cups"}, 3.5, 1},
		{"word", []string{"two", "eggs"}, 2, 1},
		{"article", []string{"a", "pinch"}, 1, 1},
		{"a few", []string{"a", "few", "sprigs"}, 3, 2},
		{"a couple", []string{"a", "couple", "eggs"}, 2, 2},
		{"dozen", []string{"dozen", "eggs"}, 12, 1},
		{"word and fraction", []string{"one", "and", "a", "half", "cups"}, 1.5, 4},
		{"word times fraction", []string{"three", "quarters", "cup"}, 0.75, 2},
		{"bare fraction word", []string{"half", "cup"}, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, consumed, err := resolveAmount(tt.tokens)
			if err != nil {
				t.Fatalf("resolveAmount(%v): %v", tt.tokens, err)
			}
			if amount.IsRange() {
				t.Fatalf("resolveAmount(%v) returned a range", tt.tokens)
			}
			if amount.Low() != tt.want {
				t.Errorf("value = %v, want %v", amount.Low(), tt.want)
			}
			if consumed != tt.consumed {
				t.Errorf("consumed = %d, want %d", consumed, tt.consumed)
			}
		})
	}
}

func TestResolveAmountRange(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		low      float64
		high     float64
		mid      float64
		consumed int
	}{
		{"hyphen range", []string{"1", "-", "2", "cups"}, 1, 2, 1.5, 3},
		{"to range", []string{"1", "to", "2", "cups"}, 1, 2, 1.5, 3},
		{"or range", []string{"2", "or", "3", "sprigs"}, 2, 3, 2.5, 3},
		{"word range", []string{"one", "or", "two", "cups"}, 1, 2, 1.5, 3},
		{"fraction range", []string{"1/4", "to", "1/2", "tsp"}, 0.25, 0.5, 0.375, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, consumed, err := resolveAmount(tt.tokens)
			if err != nil {
				t.Fatalf("resolveAmount(%v): %v", tt.tokens, err)
			}
			if !amount.IsRange() {
				t.Fatalf("resolveAmount(%v) did not return a range", tt.tokens)
			}
			if amount.Low() != tt.low || amount.High() != tt.high {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", amount.Low(), amount.High(), tt.low, tt.high)
			}
			if amount.Mid() != tt.mid {
				t.Errorf("Mid() = %v, want %v", amount.Mid(), tt.mid)
			}
			if consumed != tt.consumed {
				t.Errorf("consumed = %d, want %d", consumed, tt.consumed)
			}
		})
	}
}

func TestResolveAmountNone(t *testing.T) {
	for _, tokens := range [][]string{
		{"salt", "to", "taste"},
		{"pinch", "of", "salt"},
		{},
	} {
		if _, _, err := resolveAmount(tokens); !errors.Is(err, ErrNoAmount) {
			t.Errorf("resolveAmount(%v) err = %v, want ErrNoAmount", tokens, err)
		}
	}
}

// 所有等值拼寫必須產生相同的 Amount
func TestAmountEqualAcrossSpellings(t *testing.T) {
	spellings := [][]string{
		{"1/2"},
		{"½"},
		{"half"},
		{"0.5"},
	}
	base, _, err := resolveAmount(spellings[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, tokens := range spellings[1:] {
		got, _, err := resolveAmount(tokens)
		if err != nil {
			t.Fatalf("resolveAmount(%v): %v", tokens, err)
		}
		if !got.Equal(base) {
			t.Errorf("resolveAmount(%v) = %v, not equal to %v", tokens, got, base)
		}
	}
}

func TestAmountMidRounding(t *testing.T) {
	amount, _, err := resolveAmount([]string{"1/3", "to", "2/3"})
	if err != nil {
		t.Fatal(err)
	}
	if amount.Mid() != 0.5 {
		t.Errorf("Mid() = %v, want 0.5", amount.Mid())
	}
	single, _, _ := resolveAmount([]string{"1/3"})
	if single.Low() != 0.3333 {
		t.Errorf("Low() = %v, want 0.3333", single.Low())
	}
}
