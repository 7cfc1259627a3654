// package repositories provides the persistence layer for all model types.
//
// Each repository wraps the shared [pgxpool.Pool]; every query is
// parameterized and every method takes the request context so in-flight
// statements are cancelled when the client goes away.
package repositories

import (
	"strconv"
	"strings"
	"unicode"
)

// pageSize is the fixed catalog page size.
const pageSize = 30

// capitalizeFirst upper-cases the first rune of s.
//
// Stored genres are capitalized ("Rock", "Hip hop"); the filter accepts
// lowercase input and matches the stored form.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// placeholderList joins n consecutive placeholders starting at $start,
// e.g. placeholderList(4, 3) -> "$4, $5, $6".
func placeholderList(start, n int) string {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, "$"+strconv.Itoa(start+i))
	}
	return strings.Join(parts, ", ")
}
