package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/lccfund/backend/internal/controllers/v1"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestStateAllocationsCreate() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/allocations",
		fmt.Sprintf(`[{"cycleId": "%s", "state": "Khartoum", "decisionNo": 1, "amount": 150}]`, cycle.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.StateAllocationCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal("Khartoum", response.Data[0].Data.State)
	suite.Assert().Contains(response.Data[0].Data.Links.StateSummary, "/v1/states/Khartoum/summary")
}

func (suite *TestSuiteStandard) TestStateAllocationsCreateNonPositive() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/allocations",
		fmt.Sprintf(`[{"cycleId": "%s", "state": "Khartoum", "amount": 0}]`, cycle.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestStateSummaryEndpoint() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Khartoum", DecisionNo: 1, Amount: decimal.NewFromInt(300)})
	suite.createTestProject(models.Project{
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
		Expenses:      models.ExpenseLines{{Category: "WASH", TotalCost: decimal.NewFromInt(100)}},
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/states/Khartoum/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.StateSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Total.Equal(decimal.NewFromInt(300)), response.Data.Total.String())
	suite.Assert().True(response.Data.Committed.Equal(decimal.NewFromInt(100)), response.Data.Committed.String())
	suite.Assert().True(response.Data.Remaining.Equal(decimal.NewFromInt(200)), response.Data.Remaining.String())
}

func (suite *TestSuiteStandard) TestStateSummaryUnknownStateEndpoint() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/states/Nowhere/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.StateSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Total.IsZero())
}

func (suite *TestSuiteStandard) TestStateAllocationsListFilterByCycle() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})
	other := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	_ = suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Khartoum", DecisionNo: 1, Amount: decimal.NewFromInt(100)})
	_ = suite.createTestStateAllocation(models.StateAllocation{CycleID: other.ID, State: "Kassala", DecisionNo: 1, Amount: decimal.NewFromInt(100)})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/allocations?cycle=%s", cycle.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.StateAllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Khartoum", response.Data[0].State)
}
