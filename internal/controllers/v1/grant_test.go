package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/lccfund/backend/internal/controllers/v1"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGrantsCreate() {
	donor := suite.createTestDonor(models.Donor{})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/grants",
		fmt.Sprintf(`[{"donorId": "%s", "name": "2025 Emergency Appeal", "amount": 250000}]`, donor.ID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GrantCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal("2025 Emergency Appeal", response.Data[0].Data.Name)
	suite.Assert().Equal(uint64(0), response.Data[0].Data.MaxWorkplanSequence)
	suite.Assert().Contains(response.Data[0].Data.Links.Serials, "/serials")
}

func (suite *TestSuiteStandard) TestGrantsCreateUnknownDonor() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/grants",
		`[{"donorId": "b9c9ff83-1a37-4284-8a23-d0c4d7c8e111", "name": "Orphan"}]`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGrantSummaryEndpoint() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	project := suite.createTestProject(models.Project{
		FundingStatus: models.FundingStatusCommitted,
		Expenses:      models.ExpenseLines{{Category: "WASH", TotalCost: decimal.NewFromInt(300)}},
	})
	suite.Require().NoError(models.DB.Model(&project).Update("grant_id", grant.ID).Error)

	suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(400)})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/grants/%s/summary", grant.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GrantSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Projects.Committed.Equal(decimal.NewFromInt(300)), response.Data.Projects.Committed.String())
	suite.Assert().True(response.Data.Projects.Remaining.Equal(decimal.NewFromInt(700)), response.Data.Projects.Remaining.String())
	suite.Assert().True(response.Data.Cycles.Allocated.Equal(decimal.NewFromInt(400)), response.Data.Cycles.Allocated.String())
	suite.Assert().True(response.Data.Cycles.Remaining.Equal(decimal.NewFromInt(600)), response.Data.Cycles.Remaining.String())
}

func (suite *TestSuiteStandard) TestGrantSerialsPreview() {
	suite.createTestStateCode(models.StateCode{Match: "Khartoum", Code: "KH"})

	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
	})

	recorder := test.Request(suite.T(), http.MethodGet,
		fmt.Sprintf("/v1/grants/%s/serials?mou=%s&month=0125", grant.ID, mou.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SerialPreviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("LCC-ABC-KH-0125-0001", response.Data[0].Serial)

	// The preview did not advance the counter
	var reloaded models.Grant
	suite.Require().NoError(models.DB.First(&reloaded, grant.ID).Error)
	suite.Assert().Equal(uint64(0), reloaded.MaxWorkplanSequence)
}

func (suite *TestSuiteStandard) TestGrantSerialsPreviewValidation() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})

	// Missing month
	recorder := test.Request(suite.T(), http.MethodGet,
		fmt.Sprintf("/v1/grants/%s/serials?mou=%s", grant.ID, mou.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Malformed month
	recorder = test.Request(suite.T(), http.MethodGet,
		fmt.Sprintf("/v1/grants/%s/serials?mou=%s&month=1325", grant.ID, mou.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGrantsListFilterByDonor() {
	donor := suite.createTestDonor(models.Donor{})
	other := suite.createTestDonor(models.Donor{})

	_ = suite.createTestGrant(models.Grant{DonorID: donor.ID, Name: "First"})
	_ = suite.createTestGrant(models.Grant{DonorID: other.ID, Name: "Second"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/grants?donor=%s", donor.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GrantListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("First", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestGrantUpdateCannotTouchCounter() {
	grant := suite.createTestGrant(models.Grant{Name: "Appeal"})

	// maxWorkplanSequence is not part of the editable fields and is ignored
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/grants/%s", grant.ID),
		`{"note": "updated", "maxWorkplanSequence": 99}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reloaded models.Grant
	suite.Require().NoError(models.DB.First(&reloaded, grant.ID).Error)
	suite.Assert().Equal("updated", reloaded.Note)
	suite.Assert().Equal(uint64(0), reloaded.MaxWorkplanSequence)
}
