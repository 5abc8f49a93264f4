package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/ledger"
	"github.com/lccfund/backend/internal/models"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// GrantEditable represents all user configurable parameters
type GrantEditable struct {
	DonorID uuid.UUID       `json:"donorId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the donor funding the grant
	Name    string          `json:"name" example:"2025 Emergency Appeal" default:""`        // Name of the grant
	Note    string          `json:"note" example:"" default:""`                             // Notes about the grant
	Amount  decimal.Decimal `json:"amount" example:"250000"`                                // Nominal total of the grant
}

func (editable GrantEditable) model() models.Grant {
	return models.Grant{
		DonorID: editable.DonorID,
		Name:    editable.Name,
		Note:    editable.Note,
		Amount:  editable.Amount,
	}
}

type GrantLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/grants/3b1ea324-d438-4419-882a-2fc91d71772f"`             // The grant itself
	Summary  string `json:"summary" example:"https://example.com/api/v1/grants/3b1ea324-d438-4419-882a-2fc91d71772f/summary"`  // Committed/allocated/remaining partition
	Serials  string `json:"serials" example:"https://example.com/api/v1/grants/3b1ea324-d438-4419-882a-2fc91d71772f/serials"`  // Serial preview endpoint
	Cycles   string `json:"cycles" example:"https://example.com/api/v1/cycles?grant=3b1ea324-d438-4419-882a-2fc91d71772f"`     // Distribution cycles of this grant
	Projects string `json:"projects" example:"https://example.com/api/v1/projects?grant=3b1ea324-d438-4419-882a-2fc91d71772f"` // Projects funded by this grant
}

type Grant struct {
	models.DefaultModel
	GrantEditable
	Links GrantLinks `json:"links"`

	// MaxWorkplanSequence is read-only: it only ever advances, through
	// serial issuance.
	MaxWorkplanSequence uint64 `json:"maxWorkplanSequence" example:"8"`
}

func newGrant(c *gin.Context, model models.Grant) Grant {
	url := c.GetString(string(models.DBContextURL))

	return Grant{
		DefaultModel: model.DefaultModel,
		GrantEditable: GrantEditable{
			DonorID: model.DonorID,
			Name:    model.Name,
			Note:    model.Note,
			Amount:  model.Amount,
		},
		MaxWorkplanSequence: model.MaxWorkplanSequence,
		Links: GrantLinks{
			Self:     fmt.Sprintf("%s/v1/grants/%s", url, model.ID),
			Summary:  fmt.Sprintf("%s/v1/grants/%s/summary", url, model.ID),
			Serials:  fmt.Sprintf("%s/v1/grants/%s/serials", url, model.ID),
			Cycles:   fmt.Sprintf("%s/v1/cycles?grant=%s", url, model.ID),
			Projects: fmt.Sprintf("%s/v1/projects?grant=%s", url, model.ID),
		},
	}
}

type GrantListResponse struct {
	Data       []Grant     `json:"data"`                                                          // List of Grants
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GrantCreateResponse struct {
	Data  []GrantResponse `json:"data"`                                                          // List of the created Grants or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *GrantCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, GrantResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GrantResponse struct {
	Data  *Grant  `json:"data"`                                                          // Data for the Grant
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// GrantSummaryResponse wraps the committed/allocated/remaining partition of
// a grant together with how much of it has been included into cycles.
type GrantSummaryResponse struct {
	Data  *GrantSummary `json:"data"`
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GrantSummary struct {
	Projects models.Summary `json:"projects"` // Partition of the nominal total by project funding status
	Cycles   models.Summary `json:"cycles"`   // How much of the nominal total is included into cycles
}

// SerialPreviewResponse wraps the serials an assignment would issue.
type SerialPreviewResponse struct {
	Data  []ledger.PreviewSerial `json:"data"`                                                          // The previewed serials, in issuance order
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GrantQueryFilter struct {
	DonorID lcc_uuid.UUID `form:"donor"`                      // By ID of the donor
	Name    string       `form:"name" filterField:"false"`   // By name
	Note    string       `form:"note" filterField:"false"`   // By note
	Search  string       `form:"search" filterField:"false"` // By string in name or note
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first Grant returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Grants to return. Defaults to 50.
}

func (f GrantQueryFilter) model() models.Grant {
	return models.Grant{
		DonorID: f.DonorID.UUID,
	}
}
