// Package serial implements the workplan serial ID format.
//
// A serial encodes which grant funds a project and is printed on external
// documents, so the text format is a bit-exact contract:
//
//	LCC-{donorShort}-{stateShort}-{MMYY}-{seq:04d}
//
// e.g. LCC-ABC-KH-0125-0007. Sequence numbers are scoped to a grant and
// issued from its monotonic counter; they are never reissued.
package serial

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lccfund/backend/internal/types"
)

// Prefix is the fixed first segment of every serial.
const Prefix = "LCC"

// UnknownStateCode is the placeholder used when a project's state has no
// short-code mapping. Historical data sometimes lacks the mapping, so this
// is a display degradation, not an error.
const UnknownStateCode = "XX"

var ErrInvalidSerial = errors.New("the string is not a valid workplan serial")

var serialPattern = regexp.MustCompile(`^LCC-([A-Z0-9]+)-([A-Z0-9]+)-((?:0[1-9]|1[0-2])[0-9]{2})-([0-9]{4,})$`)

// Serial is a parsed workplan serial ID.
type Serial struct {
	DonorCode string
	StateCode string
	Month     types.MonthTag
	Sequence  uint64
}

// New returns the serial for the given segments.
func New(donorCode, stateCode string, month types.MonthTag, sequence uint64) Serial {
	if stateCode == "" {
		stateCode = UnknownStateCode
	}

	return Serial{
		DonorCode: strings.ToUpper(donorCode),
		StateCode: strings.ToUpper(stateCode),
		Month:     month,
		Sequence:  sequence,
	}
}

// Parse parses a serial string.
func Parse(s string) (Serial, error) {
	match := serialPattern.FindStringSubmatch(s)
	if match == nil {
		return Serial{}, fmt.Errorf("%w: %q", ErrInvalidSerial, s)
	}

	month, err := types.ParseMonthTag(match[3])
	if err != nil {
		return Serial{}, fmt.Errorf("%w: %q", ErrInvalidSerial, s)
	}

	sequence, err := strconv.ParseUint(match[4], 10, 64)
	if err != nil {
		return Serial{}, fmt.Errorf("%w: %q", ErrInvalidSerial, s)
	}

	return Serial{
		DonorCode: match[1],
		StateCode: match[2],
		Month:     month,
		Sequence:  sequence,
	}, nil
}

// String returns the canonical text form of the serial.
func (s Serial) String() string {
	return fmt.Sprintf("%s-%s-%s-%s-%04d", Prefix, s.DonorCode, s.StateCode, s.Month, s.Sequence)
}
