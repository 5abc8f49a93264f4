package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/lccfund/backend/internal/controllers/v1"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCyclesCreate() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/cycles",
		fmt.Sprintf(`[{"grantId": "%s", "name": "Q1", "year": 2025, "amountIncluded": 400}]`, grant.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CycleCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal(models.CycleTypeOneOff, response.Data[0].Data.Type)
}

func (suite *TestSuiteStandard) TestCyclesCreateInvalidType() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/cycles",
		fmt.Sprintf(`[{"grantId": "%s", "year": 2025, "type": "quarterly", "amountIncluded": 400}]`, grant.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.CycleCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrInvalidCycleType.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCycleSummaryEndpoint() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Khartoum", DecisionNo: 1, Amount: decimal.NewFromInt(200)})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/cycles/%s/summary", cycle.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CycleSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Allocated.Equal(decimal.NewFromInt(200)), response.Data.Allocated.String())
	suite.Assert().True(response.Data.Remaining.Equal(decimal.NewFromInt(300)), response.Data.Remaining.String())
}

func (suite *TestSuiteStandard) TestCyclesListFilterByYear() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	_ = suite.createTestCycle(models.Cycle{GrantID: grant.ID, Name: "old", Year: 2024, AmountIncluded: decimal.NewFromInt(100)})
	_ = suite.createTestCycle(models.Cycle{GrantID: grant.ID, Name: "new", Year: 2025, AmountIncluded: decimal.NewFromInt(100)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/cycles?year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CycleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("new", response.Data[0].Name)
}
