package identity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/places"
)

// name list files read by LoadDir
const (
	MaleFile   = "male.txt"
	FemaleFile = "female.txt"
	FamilyFile = "surnames.txt"
)

// ErrEmptyList is returned when a name file or source holds no entries.
var ErrEmptyList = errors.New("empty name list")

// Source supplies the attributes random identities are drawn from.
type Source interface {
	GivenNames(sex fiscalcode.Sex) []string
	FamilyNames() []string
	Places() []places.Place
}

// Lists is a Source backed by in-memory name lists and a place table.
type Lists struct {
	Male   []string
	Female []string
	Family []string
	Table  *places.Table
}

// Builtin returns the embedded name lists and place table.
func Builtin() *Lists {
	return &Lists{
		Male:   maleNames,
		Female: femaleNames,
		Family: familyNames,
		Table:  places.Default(),
	}
}

// LoadDir reads name lists from dir, one name per line. Blank lines and
// lines starting with '#' are skipped. Missing files keep the built-in
// list; a nil table means the embedded one.
func LoadDir(dir string, table *places.Table) (*Lists, error) {
	l := Builtin()
	if table != nil {
		l.Table = table
	}

	files := []struct {
		name string
		dst  *[]string
	}{
		{MaleFile, &l.Male},
		{FemaleFile, &l.Female},
		{FamilyFile, &l.Family},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		names, err := readNameFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("name list missing, using built-in", "path", path)
			continue
		}
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded name list", "path", path, "count", len(names))
		*f.dst = names
	}

	if err := CheckSource(l); err != nil {
		return nil, err
	}
	return l, nil
}

// CheckSource reports an ErrEmptyList error when src cannot supply every
// attribute a random identity needs.
func CheckSource(src Source) error {
	lists := []struct {
		name string
		n    int
	}{
		{"male given names", len(src.GivenNames(fiscalcode.Male))},
		{"female given names", len(src.GivenNames(fiscalcode.Female))},
		{"family names", len(src.FamilyNames())},
		{"places", len(src.Places())},
	}
	for _, l := range lists {
		if l.n == 0 {
			return fmt.Errorf("%w: no %s", ErrEmptyList, l.name)
		}
	}
	return nil
}

func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := ReadNames(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return names, nil
}

// ReadNames parses a name list.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if err := ValidateName(s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		names = append(names, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyList
	}
	return names, nil
}

// GivenNames returns the list for sex.
func (l *Lists) GivenNames(sex fiscalcode.Sex) []string {
	if sex == fiscalcode.Female {
		return l.Female
	}
	return l.Male
}

// FamilyNames returns the surname list.
func (l *Lists) FamilyNames() []string {
	return l.Family
}

// Places returns every place in the table.
func (l *Lists) Places() []places.Place {
	if l.Table == nil {
		return nil
	}
	return l.Table.All()
}
