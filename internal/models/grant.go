package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Grant represents a donor-funded pool of money.
//
// The set of projects funded by a grant is derived from the projects'
// GrantID column, it is not stored redundantly on the grant.
type Grant struct {
	DefaultModel
	Donor   Donor     `json:"-"`
	DonorID uuid.UUID `json:"donorId"`
	Name    string
	Note    string
	Amount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The nominal total of the grant

	// MaxWorkplanSequence is the highest sequence number ever issued for
	// this grant. It is a one-way ratchet: sequence numbers are never
	// reclaimed, even when a project is reassigned to another grant,
	// because issued serials may already be printed on external documents.
	MaxWorkplanSequence uint64
}

func (g *Grant) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

func (g *Grant) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Grant)
	return tx.First(&Donor{}, toSave.DonorID).Error
}

// BeforeUpdate enforces the sequence counter ratchet.
func (g *Grant) BeforeUpdate(tx *gorm.DB) error {
	if !tx.Statement.Changed("MaxWorkplanSequence") {
		return nil
	}

	switch dest := tx.Statement.Dest.(type) {
	case Grant:
		if dest.MaxWorkplanSequence < g.MaxWorkplanSequence {
			return ErrSequenceDecreased
		}
	case map[string]interface{}:
		if v, ok := dest["max_workplan_sequence"].(uint64); ok && v < g.MaxWorkplanSequence {
			return ErrSequenceDecreased
		}
	}

	return nil
}

// IssueSequences advances the grant's sequence counter by count and returns
// the first and last sequence number of the issued range.
//
// The counter row is locked for the duration of the transaction, so a
// concurrent issuance against the same grant observes the new high-water
// mark before computing its own range. Must be called inside a transaction.
func (g *Grant) IssueSequences(tx *gorm.DB, count uint64) (first, last uint64, err error) {
	var current Grant
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, g.ID).Error
	if err != nil {
		return 0, 0, err
	}

	first = current.MaxWorkplanSequence + 1
	last = current.MaxWorkplanSequence + count

	err = tx.Model(&current).Update("max_workplan_sequence", last).Error
	if err != nil {
		return 0, 0, err
	}

	g.MaxWorkplanSequence = last
	return first, last, nil
}

// Projects returns all projects currently funded by this grant.
func (g Grant) Projects(db *gorm.DB) ([]Project, error) {
	var projects []Project
	err := db.Where("grant_id = ?", g.ID).Order("submitted_at ASC").Find(&projects).Error
	return projects, err
}

// Summary computes the committed/allocated/remaining partition of the
// grant's nominal total from the current project rows.
//
// A grant without any matching projects yields zero sums, so remaining
// collapses to the full nominal amount.
func (g Grant) Summary(db *gorm.DB) (Summary, error) {
	committed, allocated, err := projectSums(db.Model(&Project{}).Where("grant_id = ?", g.ID))
	if err != nil {
		return Summary{}, err
	}

	return newSummary(g.Amount, committed, allocated), nil
}

// IncludedSummary reports how much of the grant's nominal total has been
// included into distribution cycles. Over-inclusion is tolerated and shows
// up as negative remaining.
func (g Grant) IncludedSummary(db *gorm.DB) (Summary, error) {
	var included decimal.NullDecimal
	err := db.Model(&Cycle{}).Where("grant_id = ?", g.ID).Select("SUM(amount_included)").Row().Scan(&included)
	if err != nil {
		return Summary{}, err
	}

	return newSummary(g.Amount, decimal.Zero, included.Decimal), nil
}
