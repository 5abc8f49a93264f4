package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/models"
)

// DonorEditable represents all user configurable parameters
type DonorEditable struct {
	Name      string `json:"name" example:"Action Committee" default:""`            // Name of the donor
	ShortCode string `json:"shortCode" example:"ABC" default:""`                    // Short code used in workplan serials
	Note      string `json:"note" example:"Main donor for the 2025 appeal" default:""` // Notes about the donor
}

func (editable DonorEditable) model() models.Donor {
	return models.Donor{
		Name:      editable.Name,
		ShortCode: editable.ShortCode,
		Note:      editable.Note,
	}
}

type DonorLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/donors/3b1ea324-d438-4419-882a-2fc91d71772f"`          // The donor itself
	Grants string `json:"grants" example:"https://example.com/api/v1/grants?donor=3b1ea324-d438-4419-882a-2fc91d71772f"` // Grants funded by this donor
}

type Donor struct {
	models.DefaultModel
	DonorEditable
	Links DonorLinks `json:"links"`
}

func newDonor(c *gin.Context, model models.Donor) Donor {
	url := c.GetString(string(models.DBContextURL))

	return Donor{
		DefaultModel: model.DefaultModel,
		DonorEditable: DonorEditable{
			Name:      model.Name,
			ShortCode: model.ShortCode,
			Note:      model.Note,
		},
		Links: DonorLinks{
			Self:   fmt.Sprintf("%s/v1/donors/%s", url, model.ID),
			Grants: fmt.Sprintf("%s/v1/grants?donor=%s", url, model.ID),
		},
	}
}

type DonorListResponse struct {
	Data       []Donor     `json:"data"`                                                          // List of Donors
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DonorCreateResponse struct {
	Data  []DonorResponse `json:"data"`                                                          // List of the created Donors or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *DonorCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, DonorResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DonorResponse struct {
	Data  *Donor  `json:"data"`                                                          // Data for the Donor
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DonorQueryFilter struct {
	Name      string `form:"name" filterField:"false"`   // By name
	ShortCode string `form:"shortCode"`                  // By short code
	Note      string `form:"note" filterField:"false"`   // By note
	Search    string `form:"search" filterField:"false"` // By string in name or note
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first Donor returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of Donors to return. Defaults to 50.
}

func (f DonorQueryFilter) model() models.Donor {
	return models.Donor{
		ShortCode: f.ShortCode,
	}
}
