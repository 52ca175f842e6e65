// Package identity supplies the attributes a fiscal code is computed from
// and generates random test identities from them.
// Randomness comes from crypto/rand; encoding is delegated to fiscalcode.
package identity

import (
	"time"

	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
)

// Identity holds a generated or entered person together with their code.
type Identity struct {
	ID         string         `json:"id"`
	GivenName  string         `json:"given_name"`
	FamilyName string         `json:"family_name"`
	Sex        fiscalcode.Sex `json:"sex"`
	DOB        time.Time      `json:"dob"`
	PlaceCode  string         `json:"place_code"`
	PlaceName  string         `json:"place_name"`
	Province   string         `json:"province,omitempty"`
	Code       string         `json:"code"`
	CreatedAt  time.Time      `json:"created_at"`
}

// FullName returns "given family".
func (id Identity) FullName() string {
	return id.GivenName + " " + id.FamilyName
}

// Person returns the encoder input for the identity, with names normalized.
func (id Identity) Person() fiscalcode.Person {
	return fiscalcode.Person{
		GivenName:  NormalizeName(id.GivenName),
		FamilyName: NormalizeName(id.FamilyName),
		Sex:        id.Sex,
		BirthDate:  id.DOB,
		PlaceCode:  id.PlaceCode,
	}
}
