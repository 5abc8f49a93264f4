package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Mou represents a memorandum of understanding with a partner, bundling one
// or more field projects under an emergency response room.
//
// An MOU is either unassigned or assigned. The flag flips when serials are
// issued for its projects and is the authoritative signal; it replaces the
// serial-prefix sniffing of earlier iterations of the portal.
//
// TotalAmount, Objectives and Beneficiaries are a derived document: they are
// regenerated from the linked projects on every linkage change and are never
// edited directly.
type Mou struct {
	DefaultModel
	PartnerName   string
	EmergencyRoom string
	Note          string

	Assigned bool

	TotalAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Objectives    string
	Beneficiaries uint
}

func (m *Mou) BeforeSave(_ *gorm.DB) error {
	m.PartnerName = strings.TrimSpace(m.PartnerName)
	m.EmergencyRoom = strings.TrimSpace(m.EmergencyRoom)
	m.Note = strings.TrimSpace(m.Note)

	return nil
}

// Projects returns the MOU's linked projects in submission order.
func (m Mou) Projects(db *gorm.DB) ([]Project, error) {
	var projects []Project
	err := db.Where("mou_id = ?", m.ID).Order("submitted_at ASC").Find(&projects).Error
	return projects, err
}

// CommittedProjects returns the linked projects eligible for serial
// assignment, in submission order.
func (m Mou) CommittedProjects(db *gorm.DB) ([]Project, error) {
	var projects []Project
	err := db.
		Where("mou_id = ? AND funding_status = ?", m.ID, FundingStatusCommitted).
		Order("submitted_at ASC").
		Find(&projects).Error
	return projects, err
}
