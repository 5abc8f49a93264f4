package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CycleType describes how a distribution cycle pays out.
type CycleType string

const (
	CycleTypeOneOff    CycleType = "one_off"
	CycleTypeTranches  CycleType = "tranches"
	CycleTypeEmergency CycleType = "emergency"
)

// Cycle represents a time-boxed distribution round drawing from one grant.
//
// The included amount may exceed the grant's nominal total. Over-inclusion
// is surfaced as negative remaining, not rejected.
type Cycle struct {
	DefaultModel
	Grant          Grant     `json:"-"`
	GrantID        uuid.UUID `json:"grantId"`
	Name           string
	Note           string
	Year           uint
	Type           CycleType `gorm:"default:one_off"`
	TrancheCount   *uint     // Only set for cycles of type tranches
	AmountIncluded decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (c *Cycle) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if !slices.Contains([]CycleType{CycleTypeOneOff, CycleTypeTranches, CycleTypeEmergency}, c.Type) {
		return ErrInvalidCycleType
	}

	if c.Type == CycleTypeTranches && (c.TrancheCount == nil || *c.TrancheCount == 0) {
		return ErrTrancheCountRequired
	}

	if c.AmountIncluded.IsNegative() || c.AmountIncluded.IsZero() {
		return ErrAmountNotPositive
	}

	return nil
}

func (c *Cycle) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Cycle)
	return tx.First(&Grant{}, toSave.GrantID).Error
}

// Allocations returns the cycle's state allocations.
func (c Cycle) Allocations(db *gorm.DB) ([]StateAllocation, error) {
	var allocations []StateAllocation
	err := db.Where("cycle_id = ?", c.ID).Order("state ASC, decision_no ASC").Find(&allocations).Error
	return allocations, err
}

// Summary reports how much of the cycle's included amount has been
// subdivided into state allocations. The sum of a cycle's state allocations
// may exceed the included amount, which shows up as negative remaining.
func (c Cycle) Summary(db *gorm.DB) (Summary, error) {
	var allocated decimal.NullDecimal
	err := db.Model(&StateAllocation{}).Where("cycle_id = ?", c.ID).Select("SUM(amount)").Row().Scan(&allocated)
	if err != nil {
		return Summary{}, err
	}

	return newSummary(c.AmountIncluded, decimal.Zero, allocated.Decimal), nil
}
