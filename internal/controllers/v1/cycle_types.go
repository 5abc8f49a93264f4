package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// CycleEditable represents all user configurable parameters
type CycleEditable struct {
	GrantID        uuid.UUID        `json:"grantId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the grant the cycle draws from
	Name           string           `json:"name" example:"Q1 distribution" default:""`              // Name of the cycle
	Note           string           `json:"note" example:"" default:""`                             // Notes about the cycle
	Year           uint             `json:"year" example:"2025"`                                    // Calendar year of the cycle
	Type           models.CycleType `json:"type" example:"one_off" default:"one_off"`               // Payout mode: one_off, tranches or emergency
	TrancheCount   *uint            `json:"trancheCount" example:"3"`                               // Number of tranches, only for cycles of type tranches
	AmountIncluded decimal.Decimal  `json:"amountIncluded" example:"80000"`                         // Amount of the grant included into this cycle
}

func (editable CycleEditable) model() models.Cycle {
	return models.Cycle{
		GrantID:        editable.GrantID,
		Name:           editable.Name,
		Note:           editable.Note,
		Year:           editable.Year,
		Type:           editable.Type,
		TrancheCount:   editable.TrancheCount,
		AmountIncluded: editable.AmountIncluded,
	}
}

type CycleLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/cycles/da84e72a-7f4a-4b09-a103-b16b48bbb171"`                // The cycle itself
	Summary     string `json:"summary" example:"https://example.com/api/v1/cycles/da84e72a-7f4a-4b09-a103-b16b48bbb171/summary"`     // Subdivision of the included amount into state allocations
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?cycle=da84e72a-7f4a-4b09-a103-b16b48bbb171"` // State allocations of this cycle
}

type Cycle struct {
	models.DefaultModel
	CycleEditable
	Links CycleLinks `json:"links"`
}

func newCycle(c *gin.Context, model models.Cycle) Cycle {
	url := c.GetString(string(models.DBContextURL))

	return Cycle{
		DefaultModel: model.DefaultModel,
		CycleEditable: CycleEditable{
			GrantID:        model.GrantID,
			Name:           model.Name,
			Note:           model.Note,
			Year:           model.Year,
			Type:           model.Type,
			TrancheCount:   model.TrancheCount,
			AmountIncluded: model.AmountIncluded,
		},
		Links: CycleLinks{
			Self:        fmt.Sprintf("%s/v1/cycles/%s", url, model.ID),
			Summary:     fmt.Sprintf("%s/v1/cycles/%s/summary", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?cycle=%s", url, model.ID),
		},
	}
}

type CycleListResponse struct {
	Data       []Cycle     `json:"data"`                                                          // List of Cycles
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CycleCreateResponse struct {
	Data  []CycleResponse `json:"data"`                                                          // List of the created Cycles or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CycleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CycleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CycleResponse struct {
	Data  *Cycle  `json:"data"`                                                          // Data for the Cycle
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// CycleSummaryResponse wraps the subdivision of the cycle's included amount
// into state allocations.
type CycleSummaryResponse struct {
	Data  *models.Summary `json:"data"`
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CycleQueryFilter struct {
	GrantID lcc_uuid.UUID     `form:"grant"`                      // By ID of the grant
	Year    uint             `form:"year"`                       // By calendar year
	Type    models.CycleType `form:"type"`                       // By payout mode
	Name    string           `form:"name" filterField:"false"`   // By name
	Note    string           `form:"note" filterField:"false"`   // By note
	Search  string           `form:"search" filterField:"false"` // By string in name or note
	Offset  uint             `form:"offset" filterField:"false"` // The offset of the first Cycle returned. Defaults to 0.
	Limit   int              `form:"limit" filterField:"false"`  // Maximum number of Cycles to return. Defaults to 50.
}

func (f CycleQueryFilter) model() models.Cycle {
	return models.Cycle{
		GrantID: f.GrantID.UUID,
		Year:    f.Year,
		Type:    f.Type,
	}
}
