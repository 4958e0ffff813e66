package ingredient

import (
	"reflect"
	"testing"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		want      []string
		modifiers []string
	}{
		{
			"descriptor compound dropped",
			[]string{"all-purpose", "flour"},
			[]string{"flour"},
			nil,
		},
		{
			"trailing qualifier stripped",
			[]string{"salt", "to", "taste"},
			[]string{"salt"},
			[]string{"to taste"},
		},
		{
			"last alternative kept",
			[]string{"kidney", "or", "pinto", "beans"},
			[]string{"pinto", "bean"},
			nil,
		},
		{
			"tail marker cut",
			[]string{"mustard", "such", "as", "colemans"},
			[]string{"mustard"},
			[]string{"such as colemans"},
		},
		{
			"for qualifier",
			[]string{"vegetable", "oil", "for", "frying"},
			[]string{"vegetable", "oil"},
			[]string{"for frying"},
		},
		{
			"stopwords and containers removed",
			[]string{"1", "large", "can", "crushed", "tomatoes"},
			[]string{"crushed", "tomato"},
			nil,
		},
		{
			"plural container removed",
			[]string{"2", "cans", "black", "beans"},
			[]string{"black", "bean"},
			nil,
		},
		{
			"leftover measure tokens removed",
			[]string{"cups", "sugar"},
			[]string{"sugar"},
			nil,
		},
		{
			"dimension compound dropped",
			[]string{"1/2-inch-thick", "bread"},
			[]string{"bread"},
			nil,
		},
		{
			"brand possessive dropped",
			[]string{"coleman's", "mustard"},
			[]string{"mustard"},
			nil,
		},
		{
			"slash alternative keeps last",
			[]string{"orange/yellow", "peppers"},
			[]string{"yellow", "pepper"},
			nil,
		},
		{
			"spelled numbers removed",
			[]string{"two", "bananas"},
			[]string{"banana"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, modifiers := extractName(tt.tokens)
			if !reflect.DeepEqual(cleaned, tt.want) {
				t.Errorf("cleaned = %v, want %v", cleaned, tt.want)
			}
			if !reflect.DeepEqual(modifiers, tt.modifiers) {
				t.Errorf("modifiers = %v, want %v", modifiers, tt.modifiers)
			}
		})
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jalapeño", "jalapeno"},
		{"crème fraîche", "creme fraiche"},
		{"açaí", "acai"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := foldAccents(tt.in); got != tt.want {
			t.Errorf("foldAccents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSingularizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tomatoes", "tomato"},
		{"strawberries", "strawberry"},
		{"cookies", "cookie"},
		{"peaches", "peach"},
		{"ounces", "ounce"},
		{"leaves", "leaf"},
		{"eggs", "egg"},
		{"molasses", "molasses"},
		{"hummus", "hummus"},
		{"couscous", "couscous"},
		{"swiss", "swiss"},
		{"peas", "pea"},
		{"egg", "egg"},
		{"oil", "oil"},
	}
	for _, tt := range tests {
		if got := singularizeToken(tt.in); got != tt.want {
			t.Errorf("singularizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStandardizeCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mac&cheese", "mac and cheese"},
		{"mac n cheese", "mac and cheese"},
		{"mac 'n cheese", "mac and cheese"},
	}
	for _, tt := range tests {
		if got := standardizeCharacters(tt.in); got != tt.want {
			t.Errorf("standardizeCharacters(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
