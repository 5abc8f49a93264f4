package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// FundingStatus is the position of a project in the funding lifecycle.
type FundingStatus string

const (
	FundingStatusUnassigned FundingStatus = "unassigned"
	FundingStatusAllocated  FundingStatus = "allocated"
	FundingStatusCommitted  FundingStatus = "committed"
)

// ApprovalStatus is the review state of a project.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ExpenseLine is one cost line of a project's budget.
type ExpenseLine struct {
	Category    string          `json:"category" example:"WASH"`
	Description string          `json:"description" example:"Water trucking"`
	TotalCost   decimal.Decimal `json:"totalCost" example:"1250"`
}

// ActivityLine is one planned activity of a project.
type ActivityLine struct {
	Category      string          `json:"category" example:"Health"`
	Description   string          `json:"description" example:"Mobile clinic"`
	Beneficiaries uint            `json:"beneficiaries" example:"300"`
	Cost          decimal.Decimal `json:"cost" example:"800"`
}

// Project represents a fundable unit of field activity (a "workplan").
//
// A freestanding project has no MOU yet. Once linked, it follows its MOU
// through assignment: the serial and GrantID are written together in a
// single update, exactly once per assignment, and replaced on reassignment.
type Project struct {
	DefaultModel
	Mou   *Mou       `json:"-"`
	MouID *uuid.UUID `json:"mouId"`

	Name           string
	State          string // Geography, not lifecycle
	FundingStatus  FundingStatus  `gorm:"default:unassigned"`
	ApprovalStatus ApprovalStatus `gorm:"default:pending"`

	// GrantID and Serial record which grant funds this project. They are
	// set and cleared together; the serial string is derived from the
	// grant, never the other way around.
	GrantID *uuid.UUID `json:"grantId"`
	Serial  string

	SubmittedAt       time.Time // Stable ordering for serial issuance
	Expenses          ExpenseLines  `gorm:"serializer:json"`
	PlannedActivities ActivityLines `gorm:"serializer:json"`
}

// ExpenseLines and ActivityLines are stored as serialized JSON documents,
// mirroring how the portal receives them from the form layer.
type (
	ExpenseLines  []ExpenseLine
	ActivityLines []ActivityLine
)

func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.State = strings.TrimSpace(p.State)

	if !slices.Contains([]FundingStatus{FundingStatusUnassigned, FundingStatusAllocated, FundingStatusCommitted}, p.FundingStatus) {
		return ErrInvalidFundingStatus
	}

	if !slices.Contains([]ApprovalStatus{ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected}, p.ApprovalStatus) {
		return ErrInvalidApproval
	}

	return nil
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now().In(time.UTC)
	}

	if p.MouID != nil {
		return tx.First(&Mou{}, *p.MouID).Error
	}

	return nil
}

// TotalCost sums the project's expense lines.
func (p Project) TotalCost() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range p.Expenses {
		sum = sum.Add(line.TotalCost)
	}

	return sum
}

// Beneficiaries sums the planned beneficiary counts.
func (p Project) Beneficiaries() uint {
	var sum uint
	for _, line := range p.PlannedActivities {
		sum += line.Beneficiaries
	}

	return sum
}
