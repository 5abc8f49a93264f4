package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/ledger"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/internal/types"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// MouEditable represents all user configurable parameters.
//
// The derived document (total amount, objectives, beneficiaries) is not
// editable, it is regenerated from the linked projects.
type MouEditable struct {
	PartnerName   string `json:"partnerName" example:"Relief Works" default:""`   // Name of the implementing partner
	EmergencyRoom string `json:"emergencyRoom" example:"Khartoum ER" default:""`  // Emergency response room coordinating the MOU
	Note          string `json:"note" example:"" default:""`                      // Notes about the MOU
}

func (editable MouEditable) model() models.Mou {
	return models.Mou{
		PartnerName:   editable.PartnerName,
		EmergencyRoom: editable.EmergencyRoom,
		Note:          editable.Note,
	}
}

type MouLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/mous/7e3f2c6e-33d1-4a5c-abb7-9acdab105fab"`             // The MOU itself
	Budget   string `json:"budget" example:"https://example.com/api/v1/mous/7e3f2c6e-33d1-4a5c-abb7-9acdab105fab/budget"`    // The MOU's budget rollup
	Projects string `json:"projects" example:"https://example.com/api/v1/projects?mou=7e3f2c6e-33d1-4a5c-abb7-9acdab105fab"` // Projects linked to this MOU
}

type Mou struct {
	models.DefaultModel
	MouEditable
	Links MouLinks `json:"links"`

	// Read-only: flipped by assignment, never by PATCH
	Assigned bool `json:"assigned" example:"false"`

	// The derived document, regenerated on every linkage change
	TotalAmount   decimal.Decimal `json:"totalAmount" example:"3200"`
	Objectives    string          `json:"objectives" example:"WASH: Water trucking"`
	Beneficiaries uint            `json:"beneficiaries" example:"450"`
}

func newMou(c *gin.Context, model models.Mou) Mou {
	url := c.GetString(string(models.DBContextURL))

	return Mou{
		DefaultModel: model.DefaultModel,
		MouEditable: MouEditable{
			PartnerName:   model.PartnerName,
			EmergencyRoom: model.EmergencyRoom,
			Note:          model.Note,
		},
		Assigned:      model.Assigned,
		TotalAmount:   model.TotalAmount,
		Objectives:    model.Objectives,
		Beneficiaries: model.Beneficiaries,
		Links: MouLinks{
			Self:     fmt.Sprintf("%s/v1/mous/%s", url, model.ID),
			Budget:   fmt.Sprintf("%s/v1/mous/%s/budget", url, model.ID),
			Projects: fmt.Sprintf("%s/v1/projects?mou=%s", url, model.ID),
		},
	}
}

type MouListResponse struct {
	Data       []Mou       `json:"data"`                                                          // List of MOUs
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MouCreateResponse struct {
	Data  []MouResponse `json:"data"`                                                          // List of the created MOUs or their respective error
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *MouCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, MouResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MouResponse struct {
	Data  *Mou    `json:"data"`                                                          // Data for the MOU
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// AssignmentRequest is the body of assign and reassign calls.
type AssignmentRequest struct {
	GrantID lcc_uuid.UUID  `json:"grantId" binding:"required" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the grant to fund the MOU's projects from
	Month   types.MonthTag `json:"month" binding:"required" example:"0125"`                                   // Month tag the serials will carry, MMYY
}

// AssignmentResponse reports one assign or reassign operation, including the
// per-project outcomes of the serial writes.
type AssignmentResponse struct {
	Data  *ledger.AssignmentResult `json:"data"`
	Error *string                  `json:"error" example:"MOU is already assigned to a grant"` // The error, if any occurred
}

// LinkageRequest is the body of linkage calls.
type LinkageRequest struct {
	ProjectIDs []lcc_uuid.UUID `json:"projectIds" binding:"required"` // IDs of the projects to link or unlink
}

// DocumentResponse wraps the regenerated MOU document after a linkage change.
type DocumentResponse struct {
	Data  *ledger.Document `json:"data"`
	Error *string          `json:"error" example:"MOU is already assigned to a grant"` // The error, if any occurred
}

// BudgetRollupResponse wraps the MOU's three-level budget table.
type BudgetRollupResponse struct {
	Data  *ledger.BudgetRollup `json:"data"`
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MouQueryFilter struct {
	PartnerName   string `form:"partnerName" filterField:"false"` // By partner name
	EmergencyRoom string `form:"emergencyRoom"`                   // By emergency room
	Assigned      bool   `form:"assigned"`                        // By assignment state
	Note          string `form:"note" filterField:"false"`        // By note
	Offset        uint   `form:"offset" filterField:"false"`      // The offset of the first MOU returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`       // Maximum number of MOUs to return. Defaults to 50.
}

func (f MouQueryFilter) model() models.Mou {
	return models.Mou{
		EmergencyRoom: f.EmergencyRoom,
		Assigned:      f.Assigned,
	}
}
