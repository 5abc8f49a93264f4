package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/lccfund/backend/internal/controllers/v1"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestMousCreate() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/mous", `[{"partnerName": "Relief Works", "emergencyRoom": "Khartoum ER"}]`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.MouCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal("Relief Works", response.Data[0].Data.PartnerName)
	suite.Assert().False(response.Data[0].Data.Assigned)
	suite.Assert().Contains(response.Data[0].Data.Links.Budget, "/budget")
}

func (suite *TestSuiteStandard) TestMouAssignEndpoint() {
	suite.createTestStateCode(models.StateCode{Match: "Khartoum", Code: "KH"})

	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
	})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/assign", mou.ID),
		fmt.Sprintf(`{"grantId": "%s", "month": "0125"}`, grant.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AssignmentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(1, response.Data.Assigned)
	suite.Require().Len(response.Data.Projects, 1)
	suite.Assert().Equal("LCC-ABC-KH-0125-0001", response.Data.Projects[0].Serial)

	// A second assignment of the same MOU is rejected
	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/assign", mou.ID),
		fmt.Sprintf(`{"grantId": "%s", "month": "0225"}`, grant.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMouAssignWithoutCommittedProjects() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/assign", mou.ID),
		fmt.Sprintf(`{"grantId": "%s", "month": "0125"}`, grant.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMouReassignEndpoint() {
	donor := suite.createTestDonor(models.Donor{})
	grantA := suite.createTestGrant(models.Grant{DonorID: donor.ID, Amount: decimal.NewFromInt(10000)})
	grantB := suite.createTestGrant(models.Grant{DonorID: donor.ID, Amount: decimal.NewFromInt(10000)})

	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
	})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/assign", mou.ID),
		fmt.Sprintf(`{"grantId": "%s", "month": "0125"}`, grantA.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/reassign", mou.ID),
		fmt.Sprintf(`{"grantId": "%s", "month": "0225"}`, grantB.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AssignmentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(grantB.ID, response.Data.GrantID)
	suite.Assert().Equal("LCC-ABC-XX-0225-0001", response.Data.Projects[0].Serial)
}

func (suite *TestSuiteStandard) TestMouLinkageEndpoints() {
	mou := suite.createTestMou(models.Mou{})
	project := suite.createTestProject(models.Project{
		FundingStatus: models.FundingStatusCommitted,
		Expenses:      models.ExpenseLines{{Category: "WASH", Description: "Water trucking", TotalCost: decimal.NewFromInt(1250)}},
		PlannedActivities: models.ActivityLines{
			{Category: "WASH", Description: "Water trucking", Beneficiaries: 300},
		},
	})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/mous/%s/projects", mou.ID),
		fmt.Sprintf(`{"projectIds": ["%s"]}`, project.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.TotalAmount.Equal(decimal.NewFromInt(1250)), response.Data.TotalAmount.String())
	suite.Assert().Equal(uint(300), response.Data.Beneficiaries)
	suite.Assert().Equal("WASH: Water trucking", response.Data.Objectives)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/mous/%s/projects", mou.ID),
		fmt.Sprintf(`{"projectIds": ["%s"]}`, project.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.TotalAmount.IsZero())
	suite.Assert().Empty(response.Data.Objectives)
}

func (suite *TestSuiteStandard) TestMouBudgetEndpoint() {
	mou := suite.createTestMou(models.Mou{})
	base := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)

	suite.createTestProject(models.Project{
		MouID:       &mou.ID,
		Name:        "Water trucking",
		SubmittedAt: base,
		Expenses: models.ExpenseLines{
			{Category: "WASH", Description: "Water trucking", TotalCost: decimal.NewFromInt(1000)},
			{Category: "WASH", Description: "Chlorine", TotalCost: decimal.NewFromInt(250)},
		},
	})
	suite.createTestProject(models.Project{
		MouID:       &mou.ID,
		Name:        "Mobile clinic",
		SubmittedAt: base.Add(time.Hour),
		Expenses: models.ExpenseLines{
			{Category: "Health", Description: "Mobile clinic", TotalCost: decimal.NewFromInt(800)},
		},
	})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/mous/%s/budget", mou.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetRollupResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Projects, 2)
	suite.Assert().Equal("Water trucking", response.Data.Projects[0].Name)
	suite.Assert().True(response.Data.Projects[0].Subtotal.Equal(decimal.NewFromInt(1250)))
	suite.Assert().True(response.Data.Total.Equal(decimal.NewFromInt(2050)))
}

func (suite *TestSuiteStandard) TestMouUpdateCannotTouchDerivedDocument() {
	mou := suite.createTestMou(models.Mou{PartnerName: "Relief Works"})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/mous/%s", mou.ID),
		`{"note": "updated", "totalAmount": 999999}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reloaded models.Mou
	suite.Require().NoError(models.DB.First(&reloaded, mou.ID).Error)
	suite.Assert().Equal("updated", reloaded.Note)
	suite.Assert().True(reloaded.TotalAmount.IsZero())
}
