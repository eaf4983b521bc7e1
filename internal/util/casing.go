package util

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms properly (e.g., "HTTPSConnection" -> "https_connection")
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// Insert an underscore before an upper-case rune unless it continues
		// an acronym
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if (!prevUpper || nextLower) && runes[i-1] != '_' {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// ReceiverName returns the conventional one-letter receiver for a type name.
func ReceiverName(typeName string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimLeft(typeName, "_"))
	if size == 0 || !unicode.IsLetter(r) {
		return "x"
	}
	return string(unicode.ToLower(r))
}

// HelperPrefix returns the prefix for package-level helpers derived from a
// type name. Distinct type names always give distinct prefixes: exported
// names lower their first rune, unexported names gain a leading underscore.
func HelperPrefix(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if unicode.IsUpper(r) {
		return LowerFirst(typeName)
	}
	return "_" + typeName
}

// FileStem returns the snake_case file stem for a type name. Names that
// snake_case cannot be read back from, such as unexported names or
// acronyms, get a hash of the exact name appended so that no two type
// names share a stem, even on case-insensitive file systems.
func FileStem(typeName string) string {
	stem := ToSnakeCase(typeName)
	if fromSnakeCase(stem) == typeName {
		return stem
	}
	return fmt.Sprintf("%s.%08x", stem, uint32(xxhash.Sum64String(typeName)))
}

func fromSnakeCase(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		b.WriteString(UpperFirst(part))
	}
	return b.String()
}
