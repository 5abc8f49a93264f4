package v1_test

import (
	"net/http"

	v1 "github.com/lccfund/backend/internal/controllers/v1"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/test"
)

func (suite *TestSuiteStandard) TestExport() {
	_ = suite.createTestDonor(models.Donor{Name: "Action Committee"})
	_ = suite.createTestMou(models.Mou{PartnerName: "Relief Works"})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Every registered model is part of the export
	suite.Assert().Len(response.Data, len(models.Registry))
	suite.Assert().Contains(string(response.Data["Donor"]), "Action Committee")
	suite.Assert().Contains(string(response.Data["Mou"]), "Relief Works")
	suite.Assert().False(response.CreationTime.IsZero())
}
