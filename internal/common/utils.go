package common

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether substr is within s, ignoring case.
// Folding is Unicode-aware, so "são" matches "São Paulo, BR".
func ContainsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// RuneLen returns the number of characters typed, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// PlaceQuery turns a "Name, CountryCode" label into the provider query form
// "Name,CountryCode". Plain names pass through trimmed.
func PlaceQuery(label string) string {
	name, country, ok := strings.Cut(label, ",")
	if !ok {
		return strings.TrimSpace(label)
	}
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)
	if country == "" {
		return name
	}
	return name + "," + country
}
