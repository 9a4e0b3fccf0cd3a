package domain

import "github.com/shopspring/decimal"

// Category groups products on the shop screen.
type Category string

const (
	CategoryAll         Category = "All" // sentinel, disables filtering
	CategoryElectronics Category = "Electronics"
	CategoryAccessories Category = "Accessories"
	CategoryHome        Category = "Home"
	CategoryKitchen     Category = "Kitchen"
	CategoryLifestyle   Category = "Lifestyle"
)

var categories = []Category{
	CategoryAll,
	CategoryElectronics,
	CategoryAccessories,
	CategoryHome,
	CategoryKitchen,
	CategoryLifestyle,
}

// Categories returns the fixed category list, All first.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches a raw value against the fixed category list.
// An empty value means All.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryAll, nil
	}
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Product is one catalog record. Stock is informational and never decremented.
type Product struct {
	ID          ProductID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	Features    []string        `json:"features"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}

// Validate checks the invariants a catalog load must hold.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return errInvalidProduct("missing id")
	case p.Name == "":
		return errInvalidProduct("missing name for " + string(p.ID))
	case p.Price.IsNegative():
		return errInvalidProduct("negative price for " + string(p.ID))
	case p.Rating < 0 || p.Rating > 5:
		return errInvalidProduct("rating out of range for " + string(p.ID))
	case p.Stock < 0:
		return errInvalidProduct("negative stock for " + string(p.ID))
	}
	if p.Category == CategoryAll {
		return errInvalidProduct("product " + string(p.ID) + " cannot use the All category")
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return errInvalidProduct("unknown category " + string(p.Category) + " for " + string(p.ID))
	}
	return nil
}

type InvalidProductError struct {
	Reason string
}

func (e *InvalidProductError) Error() string {
	return "invalid product: " + e.Reason
}

func errInvalidProduct(reason string) error {
	return &InvalidProductError{Reason: reason}
}
