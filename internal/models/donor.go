package models

import (
	"strings"

	"gorm.io/gorm"
)

// Donor represents an organization funding one or more grants.
//
// The short code is embedded into every workplan serial issued for the
// donor's grants, so it becomes immutable once a grant references the donor.
type Donor struct {
	DefaultModel
	Name      string `gorm:"uniqueIndex"`
	ShortCode string
	Note      string
}

func (d *Donor) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Note = strings.TrimSpace(d.Note)
	d.ShortCode = strings.ToUpper(strings.TrimSpace(d.ShortCode))

	return nil
}

// BeforeUpdate rejects short code changes for donors that are already
// referenced by a grant. Serials with the old code are printed on external
// documents and cannot be recalled.
func (d *Donor) BeforeUpdate(tx *gorm.DB) error {
	if !tx.Statement.Changed("ShortCode") {
		return nil
	}

	var count int64
	err := tx.Model(&Grant{}).Where("donor_id = ?", d.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrDonorReferenced
	}

	return nil
}
