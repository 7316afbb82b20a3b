package api

import (
	"strings"
	"testing"
	"time"
)

func TestProfileName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"full name", Profile{FirstName: "Stefan", LastName: "Meier", UserName: "stef"}, "Stefan Meier"},
		{"first only", Profile{FirstName: "Stefan", UserName: "stef"}, "Stefan"},
		{"last only", Profile{LastName: "Meier", UserName: "stef"}, "Meier"},
		{"username fallback", Profile{UserName: "stef"}, "stef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProductFormatPrice(t *testing.T) {
	price := 150
	p := Product{Name: "Prinzen Perle", PriceCent: &price}
	if got := p.FormatPrice(); got != "1.50€" {
		t.Errorf("FormatPrice() = %q, want %q", got, "1.50€")
	}
}

func TestProductFormatPriceUnknown(t *testing.T) {
	p := Product{Name: "Prinzen Perle"}
	if got := p.FormatPrice(); got != "Unknown" {
		t.Errorf("FormatPrice() = %q, want %q", got, "Unknown")
	}
}

func TestBuildSaleEntries(t *testing.T) {
	profiles := map[int]Profile{7: {ID: 7, UserName: "stef"}}
	products := map[int]Product{3: {ID: 3, Name: "Mate"}}
	raws := []rawSaleEntry{
		{ID: 1, Profile: 7, Product: 3, Date: "2026-08-30T18:45:12.123456"},
	}

	entries, err := buildSaleEntries(raws, profiles, products)
	if err != nil {
		t.Fatalf("buildSaleEntries() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Profile.ID != 7 || e.Profile.UserName != "stef" {
		t.Errorf("profile not resolved: %+v", e.Profile)
	}
	if e.Product.ID != 3 || e.Product.Name != "Mate" {
		t.Errorf("product not resolved: %+v", e.Product)
	}
	want := time.Date(2026, 8, 30, 18, 45, 12, 123456000, time.UTC)
	if !e.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", e.Date, want)
	}
}

func TestBuildSaleEntriesPreservesOrder(t *testing.T) {
	profiles := map[int]Profile{1: {ID: 1}}
	products := map[int]Product{1: {ID: 1}, 2: {ID: 2}}
	raws := []rawSaleEntry{
		{ID: 10, Profile: 1, Product: 2, Date: "2026-01-02T00:00:00.000000"},
		{ID: 11, Profile: 1, Product: 1, Date: "2026-01-01T00:00:00.000000"},
	}

	entries, err := buildSaleEntries(raws, profiles, products)
	if err != nil {
		t.Fatalf("buildSaleEntries() error: %v", err)
	}
	if entries[0].ID != 10 || entries[1].ID != 11 {
		t.Errorf("order not preserved: %d, %d", entries[0].ID, entries[1].ID)
	}
}

func TestBuildSaleEntriesUnknownProfile(t *testing.T) {
	products := map[int]Product{3: {ID: 3}}
	raws := []rawSaleEntry{{ID: 1, Profile: 99, Product: 3, Date: "2026-08-30T18:45:12.000000"}}

	_, err := buildSaleEntries(raws, map[int]Profile{}, products)
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "99") {
		t.Errorf("error should name the missing id, got: %v", err)
	}
}

func TestBuildSaleEntriesUnknownProduct(t *testing.T) {
	profiles := map[int]Profile{7: {ID: 7}}
	raws := []rawSaleEntry{{ID: 1, Profile: 7, Product: 42, Date: "2026-08-30T18:45:12.000000"}}

	_, err := buildSaleEntries(raws, profiles, map[int]Product{})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error should name the missing id, got: %v", err)
	}
}

func TestBuildSaleEntriesBadDate(t *testing.T) {
	profiles := map[int]Profile{7: {ID: 7}}
	products := map[int]Product{3: {ID: 3}}
	raws := []rawSaleEntry{{ID: 1, Profile: 7, Product: 3, Date: "30.08.2026 18:45"}}

	if _, err := buildSaleEntries(raws, profiles, products); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestBuildComments(t *testing.T) {
	profiles := map[int]Profile{7: {ID: 7, UserName: "stef"}}
	raws := []rawComment{{Profile: 7, Comment: "more mate please"}}

	comments, err := buildComments(raws, profiles)
	if err != nil {
		t.Fatalf("buildComments() error: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Profile.UserName != "stef" {
		t.Errorf("profile not resolved: %+v", comments[0].Profile)
	}
	if comments[0].Comment != "more mate please" {
		t.Errorf("Comment = %q", comments[0].Comment)
	}
}

func TestBuildCommentsUnknownProfile(t *testing.T) {
	raws := []rawComment{{Profile: 5, Comment: "hi"}}
	if _, err := buildComments(raws, map[int]Profile{}); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
