package models_test

import (
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.Donor{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no donor matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.First(&models.Donor{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestExport() {
	donor := suite.createTestDonor(models.Donor{Name: "Action Committee"})

	for _, model := range models.Registry {
		export, err := model.Export()
		suite.Assert().NoError(err)
		suite.Assert().NotNil(export)
	}

	export, err := models.Donor{}.Export()
	suite.Assert().NoError(err)
	suite.Assert().Contains(string(export), donor.Name)
}
