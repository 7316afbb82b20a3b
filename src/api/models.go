package api

import (
	"fmt"
	"time"
)

// Profile is a user account in the drink management system.
type Profile struct {
	ID         int    `json:"id"`
	UserName   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	AllowedBuy bool   `json:"allowed_buy"`
	IsStaff    bool   `json:"is_staff"`
}

// Name returns the display name: first and last name when set,
// falling back to the username.
func (p Profile) Name() string {
	name := ""
	if p.FirstName != "" {
		name = p.FirstName
	}
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		name = p.UserName
	}
	return name
}

// Product is a stocked, purchasable item.
type Product struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	PriceCent *int   `json:"price_cent"`
	Displayed bool   `json:"displayed"`
}

// FormatPrice renders the price in major currency units with two
// decimals, or "Unknown" when the service did not report a price.
func (p Product) FormatPrice() string {
	if p.PriceCent == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f€", float64(*p.PriceCent)/100)
}

// Event is a priced happening (party, exam week) the service tracks.
type Event struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceGroup string `json:"price_group"`
	Active     bool   `json:"active"`
}

// SaleEntry links a profile to a product at a point in time, either a
// completed purchase or a consumed order.
type SaleEntry struct {
	ID      int
	Profile Profile
	Product Product
	Date    time.Time
}

// Comment is free text left by a profile.
type Comment struct {
	Profile Profile
	Comment string
}

// saleDateLayout is the timestamp format the service emits, with
// microsecond precision.
const saleDateLayout = "2006-01-02T15:04:05.000000"

// rawSaleEntry is the wire form of a sale/order record: profile and
// product are ids that still need resolving.
type rawSaleEntry struct {
	ID      int    `json:"id"`
	Profile int    `json:"profile"`
	Product int    `json:"product"`
	Date    string `json:"date"`
}

type rawComment struct {
	Profile int    `json:"profile"`
	Comment string `json:"comment"`
}

func profilesByID(profiles []Profile) map[int]Profile {
	m := make(map[int]Profile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return m
}

func productsByID(products []Product) map[int]Product {
	m := make(map[int]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

// buildSaleEntries joins raw sale records against the given lookup
// tables, preserving order. A record referencing an id missing from
// either table is an error, not a skipped row.
func buildSaleEntries(raws []rawSaleEntry, profiles map[int]Profile, products map[int]Product) ([]SaleEntry, error) {
	entries := make([]SaleEntry, 0, len(raws))
	for _, r := range raws {
		profile, ok := profiles[r.Profile]
		if !ok {
			return nil, fmt.Errorf("sale entry %d references unknown profile %d", r.ID, r.Profile)
		}
		product, ok := products[r.Product]
		if !ok {
			return nil, fmt.Errorf("sale entry %d references unknown product %d", r.ID, r.Product)
		}
		date, err := time.Parse(saleDateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("sale entry %d: invalid date %q: %w", r.ID, r.Date, err)
		}
		entries = append(entries, SaleEntry{
			ID:      r.ID,
			Profile: profile,
			Product: product,
			Date:    date,
		})
	}
	return entries, nil
}

func buildComments(raws []rawComment, profiles map[int]Profile) ([]Comment, error) {
	comments := make([]Comment, 0, len(raws))
	for _, r := range raws {
		profile, ok := profiles[r.Profile]
		if !ok {
			return nil, fmt.Errorf("comment references unknown profile %d", r.Profile)
		}
		comments = append(comments, Comment{Profile: profile, Comment: r.Comment})
	}
	return comments, nil
}
