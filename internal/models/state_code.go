package models

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// StateCode maps a state name to the short code used in workplan serials.
//
// Match may be a plain name or a glob pattern. Historical data contains
// several spellings for the same state, so patterns like "Khartoum*" keep
// the lookup table small.
type StateCode struct {
	DefaultModel
	Match string `gorm:"uniqueIndex"`
	Code  string
}

func (s *StateCode) BeforeSave(_ *gorm.DB) error {
	s.Match = strings.TrimSpace(s.Match)
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))

	return nil
}

// StateShortCode resolves the serial short code for a state name.
//
// The name is case-folded before matching, exact matches win over glob
// patterns. A state without any mapping yields an empty string; callers
// degrade to the serial placeholder instead of failing, since historical
// rows sometimes lack the mapping.
func StateShortCode(db *gorm.DB, name string) (string, error) {
	folded := cases.Fold().String(strings.TrimSpace(name))

	var codes []StateCode
	err := db.Find(&codes).Error
	if err != nil {
		return "", err
	}

	fold := cases.Fold()
	for _, code := range codes {
		if fold.String(code.Match) == folded {
			return code.Code, nil
		}
	}

	for _, code := range codes {
		if glob.Glob(fold.String(code.Match), folded) {
			return code.Code, nil
		}
	}

	return "", nil
}
