package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary is the committed/allocated/remaining partition of a pool of money.
//
// Remaining always equals Total - Committed - Allocated. It may be negative:
// over-commitment is a business decision that is surfaced, never rejected.
type Summary struct {
	Total     decimal.Decimal `json:"total" example:"100000"`    // The nominal total of the pool
	Committed decimal.Decimal `json:"committed" example:"62500"` // Sum of expense totals of committed projects
	Allocated decimal.Decimal `json:"allocated" example:"20000"` // Sum of provisionally reserved projects
	Remaining decimal.Decimal `json:"remaining" example:"17500"` // Total - Committed - Allocated
}

func newSummary(total, committed, allocated decimal.Decimal) Summary {
	return Summary{
		Total:     total,
		Committed: committed,
		Allocated: allocated,
		Remaining: total.Sub(committed).Sub(allocated),
	}
}

// projectSums partitions the projects matched by the query by funding status.
//
// Committed projects count as committed. Allocated projects count as
// allocated, as do unassigned projects whose approval is still pending:
// a reservation that has not been rejected yet still blocks the money.
// All other projects are excluded.
//
// Sums are always recomputed from current rows. There is no caching, which
// is acceptable because result sets are small (hundreds of projects).
func projectSums(query *gorm.DB) (committed, allocated decimal.Decimal, err error) {
	var projects []Project
	err = query.Find(&projects).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	committed = decimal.Zero
	allocated = decimal.Zero

	for _, project := range projects {
		switch project.FundingStatus {
		case FundingStatusCommitted:
			committed = committed.Add(project.TotalCost())
		case FundingStatusAllocated:
			allocated = allocated.Add(project.TotalCost())
		case FundingStatusUnassigned:
			if project.ApprovalStatus == ApprovalStatusPending {
				allocated = allocated.Add(project.TotalCost())
			}
		}
	}

	return committed, allocated, nil
}
