package models_test

import (
	"github.com/lccfund/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCycleRequiresGrant() {
	err := models.DB.Create(&models.Cycle{Year: 2025, AmountIncluded: decimal.NewFromInt(100)}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCycleTypeValidation() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	err := models.DB.Create(&models.Cycle{
		GrantID:        grant.ID,
		Year:           2025,
		Type:           "quarterly",
		AmountIncluded: decimal.NewFromInt(100),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidCycleType)
}

func (suite *TestSuiteStandard) TestCycleTrancheCountRequired() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	err := models.DB.Create(&models.Cycle{
		GrantID:        grant.ID,
		Year:           2025,
		Type:           models.CycleTypeTranches,
		AmountIncluded: decimal.NewFromInt(100),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrTrancheCountRequired)

	count := uint(3)
	err = models.DB.Create(&models.Cycle{
		GrantID:        grant.ID,
		Year:           2025,
		Type:           models.CycleTypeTranches,
		TrancheCount:   &count,
		AmountIncluded: decimal.NewFromInt(100),
	}).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestCycleAmountMustBePositive() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := models.DB.Create(&models.Cycle{
			GrantID:        grant.ID,
			Year:           2025,
			Type:           models.CycleTypeOneOff,
			AmountIncluded: amount,
		}).Error
		suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
	}
}

func (suite *TestSuiteStandard) TestCycleSummary() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Khartoum", DecisionNo: 1, Amount: decimal.NewFromInt(200)})
	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Kassala", DecisionNo: 1, Amount: decimal.NewFromInt(400)})

	// Over-allocation of the included amount shows up as negative remaining
	summary, err := cycle.Summary(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().True(summary.Total.Equal(decimal.NewFromInt(500)), summary.Total.String())
	suite.Assert().True(summary.Allocated.Equal(decimal.NewFromInt(600)), summary.Allocated.String())
	suite.Assert().True(summary.Remaining.Equal(decimal.NewFromInt(-100)), summary.Remaining.String())
}

func (suite *TestSuiteStandard) TestCycleAllocationsOrdered() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(1000)})
	cycle := suite.createTestCycle(models.Cycle{GrantID: grant.ID, Year: 2025, AmountIncluded: decimal.NewFromInt(500)})

	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Kassala", DecisionNo: 2, Amount: decimal.NewFromInt(50)})
	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Kassala", DecisionNo: 1, Amount: decimal.NewFromInt(100)})
	suite.createTestStateAllocation(models.StateAllocation{CycleID: cycle.ID, State: "Gedaref", DecisionNo: 1, Amount: decimal.NewFromInt(75)})

	allocations, err := cycle.Allocations(models.DB)
	suite.Assert().NoError(err)
	suite.Require().Len(allocations, 3)
	suite.Assert().Equal("Gedaref", allocations[0].State)
	suite.Assert().Equal(uint(1), allocations[1].DecisionNo)
	suite.Assert().Equal(uint(2), allocations[2].DecisionNo)
}
