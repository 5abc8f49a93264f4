// Package uuid wraps google/uuid with the binding interface gin needs, so
// that resource IDs parse directly from URI and query parameters.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned when a request parameter is not a UUID.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
//
// An empty parameter binds to the nil UUID so that optional query filters
// stay unset.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = UUID{}
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return ErrInvalid
	}

	*u = UUID{parsed}
	return nil
}
