package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StateAllocation attaches part of a cycle's included amount to one state.
//
// A state can receive several allocation rounds within the same cycle,
// distinguished by DecisionNo.
type StateAllocation struct {
	DefaultModel
	Cycle      Cycle     `json:"-"`
	CycleID    uuid.UUID `json:"cycleId"`
	State      string
	DecisionNo uint
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note       string
}

func (a *StateAllocation) BeforeSave(_ *gorm.DB) error {
	a.State = strings.TrimSpace(a.State)
	a.Note = strings.TrimSpace(a.Note)

	if a.Amount.IsNegative() || a.Amount.IsZero() {
		return ErrAmountNotPositive
	}

	return nil
}

func (a *StateAllocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*StateAllocation)
	return tx.First(&Cycle{}, toSave.CycleID).Error
}

// StateSummary computes the committed/allocated/remaining partition for one
// state across all cycles and decision rounds.
//
// The total is the sum of every allocation record for the state, and the
// project sums are scoped by the projects' state rather than by grant. This
// is deliberately broader than the per-cycle figure: it answers "is this
// state over-committed across all grants".
func StateSummary(db *gorm.DB, state string) (Summary, error) {
	state = strings.TrimSpace(state)

	var total decimal.NullDecimal
	err := db.Model(&StateAllocation{}).Where("state = ?", state).Select("SUM(amount)").Row().Scan(&total)
	if err != nil {
		return Summary{}, err
	}

	committed, allocated, err := projectSums(db.Model(&Project{}).Where("state = ?", state))
	if err != nil {
		return Summary{}, err
	}

	return newSummary(total.Decimal, committed, allocated), nil
}
