package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders accepted in sort expressions.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage         = errors.New("page must be >= 1")
	ErrInvalidPageSize     = errors.New("page-size must be >= 1")
	ErrInvalidTotal        = errors.New("total cannot be negative")
	ErrPageSizeWithoutPage = errors.New("--page-size requires --page to be set")
	ErrPageWithoutPageSize = errors.New("--page requires --page-size to be set")
	ErrInvalidSortFormat   = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'age:desc')")
	ErrEmptySortField      = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder    = errors.New("sort order must be 'asc' or 'desc'")
)

// Params holds pagination and sort flag values.
// A zero Page and PageSize mean pagination is disabled.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Total overrides the record count. Zero means the number of loaded rows.
	Total int

	// Sort is a sort expression in "field" or "field:order" form.
	Sort string
}

// Validate checks that the parameters are individually valid and paired.
func (p Params) Validate() error {
	if p.Page < 0 {
		return ErrInvalidPage
	}
	if p.PageSize < 0 {
		return ErrInvalidPageSize
	}
	if p.Total < 0 {
		return ErrInvalidTotal
	}

	// Check page/page-size pairing
	if p.Page == 0 && p.PageSize > 0 {
		return ErrPageSizeWithoutPage
	}
	if p.PageSize == 0 && p.Page > 0 {
		return ErrPageWithoutPageSize
	}

	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// IsEnabled returns true if page-based pagination is requested.
func (p Params) IsEnabled() bool {
	return p.Page > 0 && p.PageSize > 0
}

// EffectiveTotal returns Total, or loaded when Total is unset.
func (p Params) EffectiveTotal(loaded int) int {
	if p.Total > 0 {
		return p.Total
	}
	return loaded
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "age:desc", "city:ASC".
// A bare field sorts ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", "", ErrEmptySortField
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
