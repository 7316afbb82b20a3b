package search

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fachschaft/dms/src/api"
)

func testProducts() []api.Product {
	return []api.Product{
		{ID: 1, Name: "Prinzen Perle", Quantity: 3},
		{ID: 2, Name: "Club Mate", Quantity: 12},
		{ID: 3, Name: "Flora Mate", Quantity: 5},
		{ID: 4, Name: "Spezi", Quantity: 7},
	}
}

func testProfiles() []api.Profile {
	return []api.Profile{
		{ID: 1, FirstName: "Stefan", LastName: "Meier", UserName: "stef", AllowedBuy: true},
		{ID: 2, FirstName: "Anna", LastName: "Schmidt", UserName: "anna", AllowedBuy: true},
	}
}

func newTestSelector(input string) (*Selector, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewSelector(strings.NewReader(input), out), out
}

func TestMatchCaseInsensitiveSubstring(t *testing.T) {
	names := []string{"Prinzen Perle", "Club Mate", "Spezi"}
	hits, err := Match("mate", len(names), func(i int) string { return names[i] })
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 1 || hits[0] != 1 {
		t.Errorf("hits = %v, want [1]", hits)
	}
}

func TestMatchWildcardAndSpaces(t *testing.T) {
	names := []string{"Prinzen Perle", "Club Mate"}

	hits, err := Match("pri*perle", len(names), func(i int) string { return names[i] })
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 1 || hits[0] != 0 {
		t.Errorf("wildcard hits = %v, want [0]", hits)
	}

	hits, err = Match("club mate", len(names), func(i int) string { return names[i] })
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 1 || hits[0] != 1 {
		t.Errorf("space hits = %v, want [1]", hits)
	}
}

func TestMatchEmptyQueryMatchesAll(t *testing.T) {
	names := []string{"a", "b", "c"}
	hits, err := Match("", len(names), func(i int) string { return names[i] })
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("got %d hits, want 3", len(hits))
	}
}

func TestMatchInvalidPattern(t *testing.T) {
	if _, err := Match("(", 1, func(i int) string { return "x" }); err == nil {
		t.Fatal("expected error for unbalanced pattern")
	}
}

func TestProductSingleMatchNoPrompt(t *testing.T) {
	sel, out := newTestSelector("")
	product, err := sel.Product(testProducts(), "spezi", nil)
	if err != nil {
		t.Fatalf("Product() error: %v", err)
	}
	if product.ID != 4 {
		t.Errorf("product = %+v, want Spezi", product)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected prompt output: %q", out.String())
	}
}

func TestProductNothingFound(t *testing.T) {
	sel, _ := newTestSelector("")
	_, err := sel.Product(testProducts(), "kaffee", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `nothing like "kaffee" found`) {
		t.Errorf("error = %v", err)
	}
}

func TestProductNothingFoundSuggestion(t *testing.T) {
	sel, _ := newTestSelector("")
	_, err := sel.Product(testProducts(), "clubmate", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected a suggestion, got: %v", err)
	}
}

func TestProductTooManyMatches(t *testing.T) {
	products := make([]api.Product, 6)
	for i := range products {
		products[i] = api.Product{ID: i + 1, Name: "Mate Variant", Quantity: 1}
	}
	sel, _ := newTestSelector("")
	_, err := sel.Product(products, "mate", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too many") {
		t.Errorf("error = %v", err)
	}
}

func TestProductPromptedSelection(t *testing.T) {
	sel, out := newTestSelector("2\n")
	product, err := sel.Product(testProducts(), "mate", nil)
	if err != nil {
		t.Fatalf("Product() error: %v", err)
	}
	if product.Name != "Flora Mate" {
		t.Errorf("product = %+v, want Flora Mate", product)
	}
	prompt := out.String()
	if !strings.Contains(prompt, "(1) Club Mate") || !strings.Contains(prompt, "(2) Flora Mate") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestProductSelectionOutOfRange(t *testing.T) {
	sel, _ := newTestSelector("5\n")
	if _, err := sel.Product(testProducts(), "mate", nil); err == nil {
		t.Fatal("expected error for out-of-range selection")
	}
}

func TestProductSelectionNotANumber(t *testing.T) {
	sel, _ := newTestSelector("mate\n")
	if _, err := sel.Product(testProducts(), "mate", nil); err == nil {
		t.Fatal("expected error for non-numeric selection")
	}
}

func TestProductAliasMatch(t *testing.T) {
	aliases := []Alias{{Alias: "wasser", Name: "Prinzen Perle"}}
	sel, _ := newTestSelector("")
	product, err := sel.Product(testProducts(), "wasser", aliases)
	if err != nil {
		t.Fatalf("Product() error: %v", err)
	}
	if product.Name != "Prinzen Perle" {
		t.Errorf("product = %+v, want Prinzen Perle via alias", product)
	}
}

func TestProductAliasDedupAndOrder(t *testing.T) {
	// "perle" hits both the alias and the product name directly; the
	// alias result comes first and the product appears once.
	aliases := []Alias{{Alias: "perle", Name: "Prinzen Perle"}}
	products := append(testProducts(), api.Product{ID: 5, Name: "Perlenbacher", Quantity: 2})

	matches, err := matchProducts(products, "perle", aliases)
	if err != nil {
		t.Fatalf("matchProducts() error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if matches[0].Name != "Prinzen Perle" {
		t.Errorf("alias match should come first, got %+v", matches)
	}
	if matches[1].Name != "Perlenbacher" {
		t.Errorf("direct match should follow, got %+v", matches)
	}
}

func TestProfileSearchesAllNameParts(t *testing.T) {
	sel, _ := newTestSelector("")
	profile, err := sel.Profile(testProfiles(), "stef")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.ID != 1 {
		t.Errorf("profile = %+v, want Stefan", profile)
	}

	profile, err = sel.Profile(testProfiles(), "schmidt")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.ID != 2 {
		t.Errorf("profile = %+v, want Anna", profile)
	}
}

func TestYesNoDefault(t *testing.T) {
	sel, out := newTestSelector("\n")
	ok, err := sel.YesNo("Buy 1 Club Mate?", true)
	if err != nil {
		t.Fatalf("YesNo() error: %v", err)
	}
	if !ok {
		t.Error("empty answer should take the default")
	}
	if !strings.Contains(out.String(), "[YES/no]") {
		t.Errorf("prompt = %q", out.String())
	}
}

func TestYesNoDefaultNo(t *testing.T) {
	sel, out := newTestSelector("\n")
	ok, err := sel.YesNo("Sure?", false)
	if err != nil {
		t.Fatalf("YesNo() error: %v", err)
	}
	if ok {
		t.Error("empty answer should take the default")
	}
	if !strings.Contains(out.String(), "[yes/NO]") {
		t.Errorf("prompt = %q", out.String())
	}
}

func TestYesNoAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"1\n", true},
		{"n\n", false},
		{"No\n", false},
		{"0\n", false},
	}
	for _, tt := range tests {
		sel, _ := newTestSelector(tt.input)
		got, err := sel.YesNo("?", true)
		if err != nil {
			t.Errorf("YesNo(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("YesNo(%q) = %t, want %t", tt.input, got, tt.want)
		}
	}
}

func TestYesNoGarbage(t *testing.T) {
	sel, _ := newTestSelector("bananas\n")
	if _, err := sel.YesNo("?", true); err == nil {
		t.Fatal("expected error for unrecognized answer")
	}
}
