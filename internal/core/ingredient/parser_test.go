package ingredient

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLineBasic(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		amount    float64
		unit      Unit
		family    Family
		wantName  string
		modifiers []string
	}{
		{
			"mixed fraction with descriptor compound",
			"1 1/2 cups all-purpose flour, sifted",
			1.5, UnitCup, FamilyVolume, "flour", []string{"sifted"},
		},
		{
			"fused weight unit",
			"8oz chicken breast",
			8, UnitOunce, FamilyWeight, "chicken breast", nil,
		},
		{
			"count noun as unit",
			"1 clove garlic, minced",
			1, "clove", FamilyCount, "garlic", []string{"minced"},
		},
		{
			"trailing count noun promoted",
			"8 garlic cloves",
			8, "clove", FamilyCount, "garlic", nil,
		},
		{
			"bare count",
			"2 eggs, beaten",
			2, "", FamilyCount, "egg", []string{"beaten"},
		},
		{
			"unicode fraction",
			"½ cup sugar",
			0.5, UnitCup, FamilyVolume, "sugar", nil,
		},
		{
			"fused unicode mixed",
			"1½ cups milk",
			1.5, UnitCup, FamilyVolume, "milk", nil,
		},
		{
			"compound word amount",
			"half-lb ground beef",
			0.5, UnitPound, FamilyWeight, "beef", nil,
		},
		{
			"hyphen mixed fraction",
			"3-1/2 cups flour",
			3.5, UnitCup, FamilyVolume, "flour", nil,
		},
		{
			"leading count noun",
			"Pinch of salt",
			0, "pinch", FamilyCount, "salt", nil,
		},
		{
			"word amount with count noun",
			"a few sprigs of thyme",
			3, "sprig", FamilyCount, "thyme", nil,
		},
		{
			"parenthetical pack size multiplies",
			"1 (16 ounce) package pasta",
			16, UnitOunce, FamilyWeight, "pasta", nil,
		},
		{
			"non-measure parenthetical kept as modifier",
			"2 avocados (firm)",
			2, "", FamilyCount, "avocado", []string{"firm"},
		},
		{
			"plural container dropped",
			"2 cans black beans",
			2, "", FamilyCount, "black bean", nil,
		},
		{
			"inline pack size multiplies",
			"2 100 gram cans of milk",
			200, UnitGram, FamilyWeight, "milk", nil,
		},
		{
			"pack size in parentheses multiplies",
			"3 (100 gram) bags flour",
			300, UnitGram, FamilyWeight, "flour", nil,
		},
		{
			"plus merges second measure",
			"1/3 cup plus 1 tablespoon sugar",
			0.3958, UnitCup, FamilyVolume, "sugar", nil,
		},
		{
			"slash alternate measures keep first",
			"1 1/5 cup/11fl oz/300ml heavy cream",
			1.2, UnitCup, FamilyVolume, "heavy cream", nil,
		},
		{
			"accent folding",
			"2 jalapeños, seeded",
			2, "", FamilyCount, "jalapeno", []string{"seeded"},
		},
		{
			"ampersand standardized",
			"1 cup mac & cheese",
			1, UnitCup, FamilyVolume, "mac and cheese", nil,
		},
		{
			"approximation word skipped",
			"about 2 cups flour",
			2, UnitCup, FamilyVolume, "flour", nil,
		},
		{
			"single letter unit",
			"1 c milk",
			1, UnitCup, FamilyVolume, "milk", nil,
		},
		{
			"percent milk",
			"1 cup 2% milk",
			1, UnitCup, FamilyVolume, "milk", nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if tt.amount == 0 {
				if parsed.Amount != nil {
					t.Errorf("Amount = %v, want nil", parsed.Amount.Mid())
				}
			} else {
				if parsed.Amount == nil {
					t.Fatalf("Amount = nil, want %v", tt.amount)
				}
				if parsed.Amount.Mid() != tt.amount {
					t.Errorf("Amount = %v, want %v", parsed.Amount.Mid(), tt.amount)
				}
			}
			if parsed.Unit != tt.unit {
				t.Errorf("Unit = %q, want %q", parsed.Unit, tt.unit)
			}
			if parsed.Family != tt.family {
				t.Errorf("Family = %q, want %q", parsed.Family, tt.family)
			}
			if parsed.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", parsed.Name, tt.wantName)
			}
			if len(tt.modifiers) > 0 || len(parsed.Modifiers) > 0 {
				if !reflect.DeepEqual(parsed.Modifiers, tt.modifiers) {
					t.Errorf("Modifiers = %v, want %v", parsed.Modifiers, tt.modifiers)
				}
			}
		})
	}
}

func TestParseLineNoAmountNoUnit(t *testing.T) {
	parsed, err := ParseLine("salt to taste")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Amount != nil {
		t.Errorf("Amount = %v, want nil", parsed.Amount)
	}
	if parsed.Unit != "" {
		t.Errorf("Unit = %q, want empty", parsed.Unit)
	}
	if parsed.Family != FamilyUnspecified {
		t.Errorf("Family = %q, want unspecified", parsed.Family)
	}
	if parsed.Name != "salt" {
		t.Errorf("Name = %q, want %q", parsed.Name, "salt")
	}
	if !reflect.DeepEqual(parsed.Modifiers, []string{"to taste"}) {
		t.Errorf("Modifiers = %v, want [to taste]", parsed.Modifiers)
	}
}

func TestParseLineRanges(t *testing.T) {
	tests := []struct {
		name string
		line string
		low  float64
		high float64
		unit Unit
	}{
		{"numeric hyphen range", "1-2 cups sugar", 1, 2, UnitCup},
		{"to range", "1 to 2 tablespoons olive oil", 1, 2, UnitTablespoon},
		{"word range", "2 or 3 sprigs mint", 2, 3, "sprig"},
		{"range across unit", "a spoonful or two of sesame seeds", 1, 2, UnitTablespoon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if parsed.Amount == nil || !parsed.Amount.IsRange() {
				t.Fatalf("ParseLine(%q) did not return a range", tt.line)
			}
			if parsed.Amount.Low() != tt.low || parsed.Amount.High() != tt.high {
				t.Errorf("bounds = [%v, %v], want [%v, %v]",
					parsed.Amount.Low(), parsed.Amount.High(), tt.low, tt.high)
			}
			if parsed.Unit != tt.unit {
				t.Errorf("Unit = %q, want %q", parsed.Unit, tt.unit)
			}
		})
	}
}

// 替代食材自帶的量測不得滲入名稱
func TestParseLineAlternativeMeasures(t *testing.T) {
	parsed, err := ParseLine("10 fresh sage leaves, or 1/2 teaspoon dried sage")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Name != "sage" {
		t.Errorf("Name = %q, want sage", parsed.Name)
	}
	if parsed.Amount == nil || parsed.Amount.Mid() != 10 {
		t.Errorf("Amount = %v, want 10", parsed.Amount)
	}

	parsed, err = ParseLine("1 cup or 2 cups sugar")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Name != "sugar" {
		t.Errorf("Name = %q, want sugar", parsed.Name)
	}
	if parsed.Unit != UnitCup {
		t.Errorf("Unit = %q, want cup", parsed.Unit)
	}
	if parsed.Amount == nil || !parsed.Amount.IsRange() ||
		parsed.Amount.Low() != 1 || parsed.Amount.High() != 2 {
		t.Errorf("Amount = %v, want range [1, 2]", parsed.Amount)
	}
}

func TestParseLineEmptyName(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"2 cups",
		"1 1/2",
		"1 (6 ounce)",
	} {
		if _, err := ParseLine(line); !errors.Is(err, ErrEmptyName) {
			t.Errorf("ParseLine(%q) err = %v, want ErrEmptyName", line, err)
		}
	}
}

// 重新解析清理後的名稱必須得到同樣的名稱
func TestParseLineIdempotent(t *testing.T) {
	lines := []string{
		"1 1/2 cups all-purpose flour, sifted",
		"8oz chicken breast",
		"2 eggs, beaten",
		"salt to taste",
		"a few sprigs of thyme",
	}
	for _, line := range lines {
		first, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		second, err := ParseLine(first.Name)
		if err != nil {
			t.Fatalf("re-parse of %q: %v", first.Name, err)
		}
		if second.Name != first.Name {
			t.Errorf("re-parse of %q changed name to %q", first.Name, second.Name)
		}
	}
}

func TestParseLineConcurrent(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if _, err := ParseLine("1 1/2 cups all-purpose flour"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
