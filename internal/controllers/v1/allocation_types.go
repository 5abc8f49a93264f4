package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// StateAllocationEditable represents all user configurable parameters
type StateAllocationEditable struct {
	CycleID    uuid.UUID       `json:"cycleId" example:"da84e72a-7f4a-4b09-a103-b16b48bbb171"` // ID of the cycle the allocation subdivides
	State      string          `json:"state" example:"Khartoum" default:""`                    // State receiving the allocation
	DecisionNo uint            `json:"decisionNo" example:"1"`                                 // Decision round within the cycle
	Amount     decimal.Decimal `json:"amount" example:"15000"`                                 // Amount allocated to the state
	Note       string          `json:"note" example:"" default:""`                             // Notes about the allocation
}

func (editable StateAllocationEditable) model() models.StateAllocation {
	return models.StateAllocation{
		CycleID:    editable.CycleID,
		State:      editable.State,
		DecisionNo: editable.DecisionNo,
		Amount:     editable.Amount,
		Note:       editable.Note,
	}
}

type StateAllocationLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/allocations/af892e10-7e0a-4fb8-b1bc-4b6d88401ed7"`       // The allocation itself
	StateSummary string `json:"stateSummary" example:"https://example.com/api/v1/states/Khartoum/summary"`                        // Cross-cycle summary for the allocation's state
	Projects     string `json:"projects" example:"https://example.com/api/v1/projects?state=Khartoum"`                            // Projects in the allocation's state
}

type StateAllocation struct {
	models.DefaultModel
	StateAllocationEditable
	Links StateAllocationLinks `json:"links"`
}

func newStateAllocation(c *gin.Context, model models.StateAllocation) StateAllocation {
	url := c.GetString(string(models.DBContextURL))

	return StateAllocation{
		DefaultModel: model.DefaultModel,
		StateAllocationEditable: StateAllocationEditable{
			CycleID:    model.CycleID,
			State:      model.State,
			DecisionNo: model.DecisionNo,
			Amount:     model.Amount,
			Note:       model.Note,
		},
		Links: StateAllocationLinks{
			Self:         fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			StateSummary: fmt.Sprintf("%s/v1/states/%s/summary", url, model.State),
			Projects:     fmt.Sprintf("%s/v1/projects?state=%s", url, model.State),
		},
	}
}

type StateAllocationListResponse struct {
	Data       []StateAllocation `json:"data"`                                                          // List of StateAllocations
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type StateAllocationCreateResponse struct {
	Data  []StateAllocationResponse `json:"data"`                                                          // List of the created StateAllocations or their respective error
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *StateAllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, StateAllocationResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type StateAllocationResponse struct {
	Data  *StateAllocation `json:"data"`                                                          // Data for the StateAllocation
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// StateSummaryResponse wraps the cross-cycle summary for one state.
type StateSummaryResponse struct {
	Data  *models.Summary `json:"data"`
	Error *string         `json:"error" example:"there is no state allocation matching your query"` // The error, if any occurred
}

type StateAllocationQueryFilter struct {
	CycleID    lcc_uuid.UUID `form:"cycle"`                      // By ID of the cycle
	State      string       `form:"state"`                      // By state
	DecisionNo uint         `form:"decisionNo"`                 // By decision round
	Note       string       `form:"note" filterField:"false"`   // By note
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first StateAllocation returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of StateAllocations to return. Defaults to 50.
}

func (f StateAllocationQueryFilter) model() models.StateAllocation {
	return models.StateAllocation{
		CycleID:    f.CycleID.UUID,
		State:      f.State,
		DecisionNo: f.DecisionNo,
	}
}
