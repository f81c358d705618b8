package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var sortColumns = []string{"title", "slug", "author", "pub_year", "id", "page_count", "file"}

// validateOrderBy returns column when it is a sortable book column, otherwise "title".
func validateOrderBy(column string) string {
	for _, c := range sortColumns {
		if column == c {
			return column
		}
	}
	return "title"
}

func validateOrder(order string) string {
	if order == "desc" {
		return "desc"
	}
	return "asc"
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// parseID appends a field error for field when s is not a UUID.
func parseID(field, s string, ferrs *[]FieldError) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		*ferrs = append(*ferrs, FieldError{Field: field, Message: "must be a valid uuid"})
		return uuid.Nil
	}
	return id
}

var errNotDecimal = errors.New("not a base-10 integer")

// ParsePage reads a page number written in base 10. Leading zeros are
// insignificant ("010" is 10); prefixes such as 0x, fractions and digit
// separators are rejected.
func ParsePage(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	sign, digits := "", s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("page %q: %w", raw, errNotDecimal)
	}
	// cast parses with base 0, so a leading zero would switch it to octal.
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return cast.ToIntE(sign + digits)
}

// parsePageNumber appends a field error for field when s is not a positive integer.
func parsePageNumber(field, s string, ferrs *[]FieldError) int {
	n, err := ParsePage(s)
	if err != nil || n < 1 {
		*ferrs = append(*ferrs, FieldError{Field: field, Message: "must be an integer > 0"})
		return 0
	}
	return n
}
