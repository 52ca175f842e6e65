// Package places loads birthplace code tables: municipalities (Belfiore
// codes), foreign states (Z codes) and historical entities.
package places

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Kind classifies what a place code identifies.
type Kind string

const (
	Municipality Kind = "municipality"
	Country      Kind = "country"
	Historical   Kind = "historical"
)

// ErrUnknownPlace is returned when a lookup key matches no place.
var ErrUnknownPlace = errors.New("unknown place")

// ErrInvalidTable is returned for malformed place tables.
var ErrInvalidTable = errors.New("invalid place table")

var codePattern = regexp.MustCompile(`^[A-Z][0-9]{3}$`)

//go:embed places.csv
var defaultCSV string

// Place is one row of the table.
type Place struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Province string `json:"province,omitempty"`
	Kind     Kind   `json:"kind"`
}

// Table indexes places by code and by province abbreviation.
type Table struct {
	places     []Place
	byCode     map[string]Place
	byProvince map[string]Place
}

// Default returns the embedded table of province capitals and common
// foreign states.
func Default() *Table {
	t, err := Parse(strings.NewReader(defaultCSV))
	if err != nil {
		// embedded data is fixed at build time
		panic("places: embedded table: " + err.Error())
	}
	return t
}

// LoadFile parses a CSV place table from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load places %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a CSV table with a header row naming at least the code and
// name columns. Province and kind are optional; kind defaults to
// municipality.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidTable, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"code", "name"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidTable, req)
		}
	}

	t := &Table{
		byCode:     make(map[string]Place),
		byProvince: make(map[string]Place),
	}

	line := 1
	for {
		line++
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidTable, line, err)
		}

		p, err := parseRecord(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidTable, line, err)
		}
		if err := t.add(p); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidTable, line, err)
		}
	}

	if len(t.places) == 0 {
		return nil, fmt.Errorf("%w: no places", ErrInvalidTable)
	}

	sort.Slice(t.places, func(i, j int) bool {
		return t.places[i].Name < t.places[j].Name
	})

	return t, nil
}

func parseRecord(rec []string, cols map[string]int) (Place, error) {
	p := Place{
		Code:     strings.ToUpper(column(rec, cols, "code")),
		Name:     column(rec, cols, "name"),
		Province: strings.ToUpper(column(rec, cols, "province")),
		Kind:     Kind(strings.ToLower(column(rec, cols, "kind"))),
	}

	if !codePattern.MatchString(p.Code) {
		return Place{}, fmt.Errorf("malformed code %q", p.Code)
	}
	if p.Name == "" {
		return Place{}, fmt.Errorf("empty name for %s", p.Code)
	}

	switch p.Kind {
	case "":
		p.Kind = Municipality
	case Municipality, Country, Historical:
	default:
		return Place{}, fmt.Errorf("unknown kind %q for %s", p.Kind, p.Code)
	}

	return p, nil
}

func column(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *Table) add(p Place) error {
	if _, dup := t.byCode[p.Code]; dup {
		return fmt.Errorf("duplicate code %s", p.Code)
	}
	t.byCode[p.Code] = p
	t.places = append(t.places, p)

	// the first municipality listed for a province is its capital
	if p.Province != "" && p.Kind == Municipality {
		if _, ok := t.byProvince[p.Province]; !ok {
			t.byProvince[p.Province] = p
		}
	}
	return nil
}

// ValidCode reports whether code has the place code layout: one letter
// followed by three digits.
func ValidCode(code string) bool {
	return codePattern.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

// Lookup finds a place by code ("H501") or province abbreviation ("RM").
func (t *Table) Lookup(key string) (Place, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if p, ok := t.byCode[k]; ok {
		return p, nil
	}
	if p, ok := t.byProvince[k]; ok {
		return p, nil
	}
	return Place{}, fmt.Errorf("%w: %q", ErrUnknownPlace, key)
}

// Resolve is Lookup that also accepts well-formed codes missing from the
// table, returning a bare municipality place for them.
func (t *Table) Resolve(key string) (Place, error) {
	p, err := t.Lookup(key)
	if err == nil {
		return p, nil
	}
	if ValidCode(key) {
		return Place{Code: strings.ToUpper(strings.TrimSpace(key)), Kind: Municipality}, nil
	}
	return Place{}, err
}

// All returns every place sorted by name.
func (t *Table) All() []Place {
	out := make([]Place, len(t.places))
	copy(out, t.places)
	return out
}

// Len reports the number of places.
func (t *Table) Len() int {
	return len(t.places)
}
