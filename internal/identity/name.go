package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned by ValidateName.
var ErrInvalidName = errors.New("invalid name")

// ValidateName accepts letters (accented included) separated by spaces,
// apostrophes or hyphens. The encoder itself accepts anything, so hosts
// call this before encoding user input.
func ValidateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for _, r := range s {
		if unicode.IsLetter(r) || isSeparator(r) {
			continue
		}
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, s, r)
	}
	return nil
}

// NormalizeName strips diacritics and separators and uppercases the rest,
// so "D'Angelo" becomes "DANGELO" and "Niccolò" becomes "NICCOLO".
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	for _, r := range plain {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\'', '-', '’':
		return true
	}
	return false
}
