package quote

import (
	"fmt"
	"strings"

	"parcelquote/internal/pkg/errs"
)

// Category is the declared content of a parcel.
type Category string

const (
	Documents   Category = "documents"
	Electronics Category = "electronics"
	Food        Category = "food"
	Clothing    Category = "clothing"
	Books       Category = "books"
	Gifts       Category = "gifts"
	Medical     Category = "medical"
	Household   Category = "household"
	Other       Category = "other"
)

var categories = []Category{
	Documents, Electronics, Food, Clothing, Books, Gifts, Medical, Household, Other,
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, error) {
	normalized := Category(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("category")
	}
	for _, c := range categories {
		if c == normalized {
			return c, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("unknown category %q", s))
}

// IsPremium reports whether the category is charged the higher category fee.
func (c Category) IsPremium() bool {
	return c == Medical || c == Electronics
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
