package identity

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/places"
)

// default age bounds for generated birth dates
const (
	DefaultMinAge = 18
	DefaultMaxAge = 80
)

// Generator produces identities and their fiscal codes.
type Generator struct {
	src    Source
	enc    *fiscalcode.Encoder
	minAge int
	maxAge int
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets where names and places are drawn from. Sources failing
// CheckSource are ignored.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src == nil || CheckSource(src) != nil {
			return
		}
		g.src = src
	}
}

// WithEncoder sets the encoder, e.g. one built with fiscalcode.Legacy().
func WithEncoder(enc *fiscalcode.Encoder) Option {
	return func(g *Generator) { g.enc = enc }
}

// WithAgeRange bounds generated birth dates. Invalid ranges are ignored.
func WithAgeRange(minAge, maxAge int) Option {
	return func(g *Generator) {
		if minAge < 0 || maxAge < minAge {
			return
		}
		g.minAge, g.maxAge = minAge, maxAge
	}
}

// New creates a generator backed by the built-in source and default encoder.
func New(opts ...Option) *Generator {
	g := &Generator{
		minAge: DefaultMinAge,
		maxAge: DefaultMaxAge,
		now:    time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	if g.src == nil {
		g.src = Builtin()
	}
	if g.enc == nil {
		g.enc = fiscalcode.New(fiscalcode.Options{})
	}
	return g
}

// Encoder returns the encoder used for every identity.
func (g *Generator) Encoder() *fiscalcode.Encoder {
	return g.enc
}

// Generate produces a random identity of random sex.
func (g *Generator) Generate() Identity {
	sex := fiscalcode.Male
	if randIntn(2) == 1 {
		sex = fiscalcode.Female
	}
	return g.GenerateSex(sex)
}

// GenerateSex produces a random identity of the given sex.
func (g *Generator) GenerateSex(sex fiscalcode.Sex) Identity {
	given, family := g.Name(sex)
	place := pick(g.src.Places())
	return g.Build(given, family, sex, g.dob(), place)
}

// Build assembles an identity from specific attributes and encodes it.
func (g *Generator) Build(given, family string, sex fiscalcode.Sex, dob time.Time, place places.Place) Identity {
	id := Identity{
		ID:         hexID(),
		GivenName:  given,
		FamilyName: family,
		Sex:        sex,
		DOB:        dob,
		PlaceCode:  place.Code,
		PlaceName:  place.Name,
		Province:   place.Province,
		CreatedAt:  g.now(),
	}
	id.Code = g.enc.EncodePerson(id.Person())
	return id
}

// Name picks a random given name for sex and a random family name.
func (g *Generator) Name(sex fiscalcode.Sex) (given, family string) {
	return pick(g.src.GivenNames(sex)), pick(g.src.FamilyNames())
}

// dob returns a date of birth between minAge and maxAge years ago.
func (g *Generator) dob() time.Time {
	now := g.now()
	age := g.minAge + randIntn(g.maxAge-g.minAge+1)
	base := now.AddDate(-age, 0, 0)
	dayOffset := randIntn(365)
	d := base.AddDate(0, 0, -dayOffset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// hexID generates an 8-character hex string.
func hexID() string {
	b, err := zcrypto.RandBytes(4)
	if err != nil {
		panic("zcrypto: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// pick returns a random element, or the zero value for an empty slice.
func pick[T any](s []T) (v T) {
	if len(s) == 0 {
		return v
	}
	return s[randIntn(len(s))]
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
