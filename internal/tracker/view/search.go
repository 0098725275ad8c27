package view

import "strings"

// MatchesSearch reports whether term is a case-insensitive substring of name or description.
// An empty term matches everything.
func MatchesSearch(name, description, term string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(name), term) || strings.Contains(strings.ToLower(description), term)
}

// Percent is part/total*100, zero when total is zero.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}

	return float64(part) / float64(total) * 100
}
