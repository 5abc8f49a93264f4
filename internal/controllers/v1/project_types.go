package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
)

// ProjectEditable represents all user configurable parameters.
//
// GrantID and Serial are not editable, they are written by assignment.
type ProjectEditable struct {
	MouID             *uuid.UUID            `json:"mouId" example:"7e3f2c6e-33d1-4a5c-abb7-9acdab105fab"` // ID of the MOU the project is linked to, if any
	Name              string                `json:"name" example:"Water trucking Omdurman" default:""`    // Name of the project
	State             string                `json:"state" example:"Khartoum" default:""`                  // State the project operates in
	FundingStatus     models.FundingStatus  `json:"fundingStatus" example:"committed" default:"unassigned"` // Position in the funding lifecycle
	ApprovalStatus    models.ApprovalStatus `json:"approvalStatus" example:"approved" default:"pending"`  // Review state
	SubmittedAt       time.Time             `json:"submittedAt" example:"2025-01-07T09:00:00Z"`           // Submission time, defaults to the creation time
	Expenses          models.ExpenseLines   `json:"expenses"`                                             // Budget lines
	PlannedActivities models.ActivityLines  `json:"plannedActivities"`                                    // Planned activities
}

func (editable ProjectEditable) model() models.Project {
	return models.Project{
		MouID:             editable.MouID,
		Name:              editable.Name,
		State:             editable.State,
		FundingStatus:     editable.FundingStatus,
		ApprovalStatus:    editable.ApprovalStatus,
		SubmittedAt:       editable.SubmittedAt,
		Expenses:          editable.Expenses,
		PlannedActivities: editable.PlannedActivities,
	}
}

type ProjectLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/projects/ac3e4dd5-7823-4e48-93a7-9f77c6e48ca6"` // The project itself
}

type Project struct {
	models.DefaultModel
	ProjectEditable
	Links ProjectLinks `json:"links"`

	// Written by assignment, read-only here
	GrantID *uuid.UUID `json:"grantId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Serial  string     `json:"serial" example:"LCC-ABC-KH-0125-0007"`
}

func newProject(c *gin.Context, model models.Project) Project {
	url := c.GetString(string(models.DBContextURL))

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			MouID:             model.MouID,
			Name:              model.Name,
			State:             model.State,
			FundingStatus:     model.FundingStatus,
			ApprovalStatus:    model.ApprovalStatus,
			SubmittedAt:       model.SubmittedAt,
			Expenses:          model.Expenses,
			PlannedActivities: model.PlannedActivities,
		},
		GrantID: model.GrantID,
		Serial:  model.Serial,
		Links: ProjectLinks{
			Self: fmt.Sprintf("%s/v1/projects/%s", url, model.ID),
		},
	}
}

type ProjectListResponse struct {
	Data       []Project   `json:"data"`                                                          // List of Projects
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProjectCreateResponse struct {
	Data  []ProjectResponse `json:"data"`                                                          // List of the created Projects or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ProjectCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ProjectResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the Project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectQueryFilter struct {
	MouID          lcc_uuid.UUID          `form:"mou"`                        // By ID of the MOU
	GrantID        lcc_uuid.UUID          `form:"grant"`                      // By ID of the funding grant
	State          string                `form:"state"`                      // By state
	FundingStatus  models.FundingStatus  `form:"fundingStatus"`              // By funding lifecycle position
	ApprovalStatus models.ApprovalStatus `form:"approvalStatus"`             // By review state
	Serial         string                `form:"serial"`                     // By serial
	Name           string                `form:"name" filterField:"false"`   // By name
	Offset         uint                  `form:"offset" filterField:"false"` // The offset of the first Project returned. Defaults to 0.
	Limit          int                   `form:"limit" filterField:"false"`  // Maximum number of Projects to return. Defaults to 50.
}

func (f ProjectQueryFilter) model() models.Project {
	var mouID, grantID *uuid.UUID
	if f.MouID.UUID != uuid.Nil {
		mouID = &f.MouID.UUID
	}

	if f.GrantID.UUID != uuid.Nil {
		grantID = &f.GrantID.UUID
	}

	return models.Project{
		MouID:          mouID,
		GrantID:        grantID,
		State:          f.State,
		FundingStatus:  f.FundingStatus,
		ApprovalStatus: f.ApprovalStatus,
		Serial:         f.Serial,
	}
}
