// Package fiscalcode computes the 16-character Italian fiscal code
// (codice fiscale) from a person's names, sex, birth date and place code.
//
// Encoding is pure and an Encoder is safe for concurrent use. The encoder
// does not validate its inputs: names with non-letter characters, empty
// names and odd-length place codes produce deterministic output rather
// than errors. Accented letters fold to their base letter and any other
// non-ASCII character becomes '?', so every position of a code is one
// byte and lengths count characters.
package fiscalcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sex is the two-valued sex flag used by the day block.
type Sex int

const (
	Male Sex = iota
	Female
)

// ErrInvalidSex is returned by ParseSex for anything other than M or F.
var ErrInvalidSex = errors.New("invalid sex")

// ParseSex parses "M" or "F" (any case, surrounding space ignored).
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return Male, nil
	case "F":
		return Female, nil
	}
	return Male, fmt.Errorf("%w: %q", ErrInvalidSex, s)
}

func (s Sex) String() string {
	if s == Female {
		return "F"
	}
	return "M"
}

// MarshalText encodes the sex as "M" or "F".
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "M" or "F".
func (s *Sex) UnmarshalText(b []byte) error {
	v, err := ParseSex(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// LegacyVowelStride reproduces the historical vowel scan that advanced its
// index by a large constant, so at most one character is ever examined.
const LegacyVowelStride = 100

// Options selects between correct output and bit-exact compatibility with
// the historical generator scripts. The zero value produces correct codes.
type Options struct {
	// SkipPadding leaves name blocks shorter than three characters unpadded,
	// matching scripts whose 'X' padding result was discarded.
	SkipPadding bool

	// VowelStride is the index increment of the vowel-filling scans.
	// Zero and one both mean stepping one character at a time.
	VowelStride int
}

// Legacy returns options reproducing both historical defects.
func Legacy() Options {
	return Options{SkipPadding: true, VowelStride: LegacyVowelStride}
}

func (o Options) stride() int {
	if o.VowelStride < 1 {
		return 1
	}
	return o.VowelStride
}

// Person groups the encoder inputs.
type Person struct {
	GivenName  string
	FamilyName string
	Sex        Sex
	BirthDate  time.Time
	PlaceCode  string
}

// Encoder computes fiscal codes with a fixed set of options.
type Encoder struct {
	opts Options
}

// New creates an encoder.
func New(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Options returns the options the encoder was created with.
func (e *Encoder) Options() Options {
	return e.opts
}

var defaultEncoder = New(Options{})

// Encode computes a fiscal code with default options.
func Encode(given, family string, sex Sex, birth time.Time, place string) string {
	return defaultEncoder.Encode(given, family, sex, birth, place)
}

// EncodePerson is Encode for a Person.
func (e *Encoder) EncodePerson(p Person) string {
	return e.Encode(p.GivenName, p.FamilyName, p.Sex, p.BirthDate, p.PlaceCode)
}

// Encode computes the fiscal code. The result is 11 + len(place) + 1
// characters long; 16 for the usual 4-character place code.
func (e *Encoder) Encode(given, family string, sex Sex, birth time.Time, place string) string {
	body := e.Body(given, family, sex, birth, place)
	return body + string(Checksum(body))
}

// Body returns the code without its trailing check letter.
func (e *Encoder) Body(given, family string, sex Sex, birth time.Time, place string) string {
	var b strings.Builder
	b.WriteString(e.familyBlock(fold(family)))
	b.WriteString(e.givenBlock(fold(given)))
	b.WriteString(yearBlock(birth.Year()))
	b.WriteByte(monthLetters[birth.Month()-1])
	b.WriteString(daySexBlock(birth.Day(), sex))
	b.WriteString(fold(place))
	return b.String()
}

// fold uppercases s and maps it onto single-byte characters: diacritics
// are stripped and what is still outside ASCII becomes unknown.
func fold(s string) string {
	if isASCII(s) {
		return strings.ToUpper(s)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	for _, r := range plain {
		r = unicode.ToUpper(r)
		if r > unicode.MaxASCII {
			r = unknown
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Checksum returns the check letter for a code body. Characters at 0-based
// even indexes (odd 1-based positions) use the odd table, the rest use the
// even table. Positions count characters, not bytes. Characters outside
// 0-9 and A-Z weigh zero.
func Checksum(body string) byte {
	sum, i := 0, 0
	for _, r := range body {
		if i%2 == 0 {
			sum += oddValue(r)
		} else {
			sum += evenValue(r)
		}
		i++
	}
	return 'A' + byte(sum%26)
}

func (e *Encoder) familyBlock(name string) string {
	chars := []rune(name)
	block := make([]rune, 0, 3)

	for _, r := range chars {
		if len(block) == 3 {
			break
		}
		if !isVowel(r) {
			block = append(block, r)
		}
	}

	block = e.fillVowels(block, chars)
	return e.pad(block)
}

func (e *Encoder) givenBlock(name string) string {
	chars := []rune(name)

	var consonants []rune
	for _, r := range chars {
		if !isVowel(r) {
			consonants = append(consonants, r)
		}
	}

	var block []rune
	if len(consonants) > 3 {
		block = []rune{consonants[0], consonants[2], consonants[3]}
	} else {
		block = consonants
	}

	block = e.fillVowels(block, chars)
	return e.pad(block)
}

// fillVowels appends vowels of name, scanning from its start, until block
// holds three characters.
func (e *Encoder) fillVowels(block, name []rune) []rune {
	step := e.opts.stride()
	for i := 0; i < len(name) && len(block) < 3; i += step {
		if isVowel(name[i]) {
			block = append(block, name[i])
		}
	}
	return block
}

func (e *Encoder) pad(block []rune) string {
	s := string(block)
	if e.opts.SkipPadding {
		return s
	}
	for n := len(block); n < 3; n++ {
		s += string(filler)
	}
	return s
}

func yearBlock(year int) string {
	y := year % 100
	if y < 0 {
		y = -y
	}
	return fmt.Sprintf("%02d", y)
}

// daySexBlock formats the day (plus 40 for women) and right-pads it with
// '0' to two characters, so day 5 for a man yields "50".
func daySexBlock(day int, sex Sex) string {
	if sex == Female {
		day += 40
	}
	s := strconv.Itoa(day)
	for len(s) < 2 {
		s += "0"
	}
	return s
}
