package ledger_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/ledger"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) month(s string) types.MonthTag {
	month, err := types.ParseMonthTag(s)
	suite.Require().NoError(err)
	return month
}

func (suite *TestSuiteStandard) TestAssign() {
	suite.createTestStateCode(models.StateCode{Match: "Khartoum", Code: "KH"})

	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	suite.advanceCounter(grant, 6)

	mou := suite.createTestMou(models.Mou{PartnerName: "Relief Works"})
	p1 := suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		Name:          "Water trucking",
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
		SubmittedAt:   suite.submittedAt(0),
		Expenses:      models.ExpenseLines{{Category: "WASH", TotalCost: decimal.NewFromInt(1000)}},
	})
	p2 := suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		Name:          "Mobile clinic",
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
		SubmittedAt:   suite.submittedAt(time.Hour),
		Expenses:      models.ExpenseLines{{Category: "Health", TotalCost: decimal.NewFromInt(500)}},
	})

	result, err := ledger.Assign(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Require().NoError(err)

	suite.Assert().Equal(uint64(7), result.FirstSequence)
	suite.Assert().Equal(uint64(8), result.LastSequence)
	suite.Assert().Equal(2, result.Assigned)
	suite.Require().Len(result.Projects, 2)
	suite.Assert().Equal("LCC-ABC-KH-0125-0007", result.Projects[0].Serial)
	suite.Assert().Equal("LCC-ABC-KH-0125-0008", result.Projects[1].Serial)

	// Serial and grant are persisted together
	var reloaded models.Project
	suite.Require().NoError(models.DB.First(&reloaded, p1.ID).Error)
	suite.Assert().Equal("LCC-ABC-KH-0125-0007", reloaded.Serial)
	suite.Require().NotNil(reloaded.GrantID)
	suite.Assert().Equal(grant.ID, *reloaded.GrantID)

	suite.Require().NoError(models.DB.First(&reloaded, p2.ID).Error)
	suite.Assert().Equal("LCC-ABC-KH-0125-0008", reloaded.Serial)

	// The counter advanced and the MOU flipped to assigned
	var reloadedGrant models.Grant
	suite.Require().NoError(models.DB.First(&reloadedGrant, grant.ID).Error)
	suite.Assert().Equal(uint64(8), reloadedGrant.MaxWorkplanSequence)

	var reloadedMou models.Mou
	suite.Require().NoError(models.DB.First(&reloadedMou, mou.ID).Error)
	suite.Assert().True(reloadedMou.Assigned)
}

func (suite *TestSuiteStandard) TestAssignPlaceholderState() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Unmapped State",
		FundingStatus: models.FundingStatusCommitted,
	})

	// A state without a short code mapping degrades to the placeholder
	result, err := ledger.Assign(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Require().NoError(err)
	suite.Require().Len(result.Projects, 1)
	suite.Assert().Equal("LCC-ABC-XX-0125-0001", result.Projects[0].Serial)
}

func (suite *TestSuiteStandard) TestAssignValidation() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})

	_, err := ledger.Assign(models.DB, mou.ID, uuid.Nil, suite.month("0125"))
	suite.Assert().ErrorIs(err, ledger.ErrGrantRequired)

	_, err = ledger.Assign(models.DB, mou.ID, grant.ID, types.MonthTag{})
	suite.Assert().ErrorIs(err, ledger.ErrMonthTagRequired)

	// Without committed projects there is nothing to issue serials for
	_, err = ledger.Assign(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Assert().ErrorIs(err, ledger.ErrNoCommittedProjects)

	_, err = ledger.Assign(models.DB, uuid.New(), grant.ID, suite.month("0125"))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAssignTwiceRejected() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
	})

	_, err := ledger.Assign(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Require().NoError(err)

	_, err = ledger.Assign(models.DB, mou.ID, grant.ID, suite.month("0225"))
	suite.Assert().ErrorIs(err, ledger.ErrMouAssigned)
}

func (suite *TestSuiteStandard) TestReassignDoesNotReclaimSequences() {
	suite.createTestStateCode(models.StateCode{Match: "Khartoum", Code: "KH"})

	donor := suite.createTestDonor(models.Donor{Name: "Action Committee", ShortCode: "ABC"})
	grantA := suite.createTestGrant(models.Grant{DonorID: donor.ID, Amount: decimal.NewFromInt(10000)})
	grantB := suite.createTestGrant(models.Grant{DonorID: donor.ID, Amount: decimal.NewFromInt(10000)})

	mou := suite.createTestMou(models.Mou{})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
		SubmittedAt:   suite.submittedAt(0),
	})
	suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
		SubmittedAt:   suite.submittedAt(time.Hour),
	})

	result, err := ledger.Assign(models.DB, mou.ID, grantA.ID, suite.month("0125"))
	suite.Require().NoError(err)
	suite.Assert().Equal(uint64(1), result.FirstSequence)
	suite.Assert().Equal(uint64(2), result.LastSequence)

	result, err = ledger.Reassign(models.DB, mou.ID, grantB.ID, suite.month("0225"))
	suite.Require().NoError(err)
	suite.Assert().Equal(uint64(1), result.FirstSequence)
	suite.Assert().Equal("LCC-ABC-KH-0225-0001", result.Projects[0].Serial)

	// Moving back to A issues fresh numbers, the ones burned by the first
	// assignment are never reused
	result, err = ledger.Reassign(models.DB, mou.ID, grantA.ID, suite.month("0325"))
	suite.Require().NoError(err)
	suite.Assert().Equal(uint64(3), result.FirstSequence)
	suite.Assert().Equal(uint64(4), result.LastSequence)
	suite.Assert().Equal("LCC-ABC-KH-0325-0003", result.Projects[0].Serial)

	var grant models.Grant
	suite.Require().NoError(models.DB.First(&grant, grantA.ID).Error)
	suite.Assert().Equal(uint64(4), grant.MaxWorkplanSequence)
}

func (suite *TestSuiteStandard) TestReassignRequiresAssignedMou() {
	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	mou := suite.createTestMou(models.Mou{})

	_, err := ledger.Reassign(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Assert().ErrorIs(err, ledger.ErrMouNotAssigned)
}

func (suite *TestSuiteStandard) TestPreviewDoesNotPersist() {
	suite.createTestStateCode(models.StateCode{Match: "Khartoum", Code: "KH"})

	grant := suite.createTestGrant(models.Grant{Amount: decimal.NewFromInt(10000)})
	suite.advanceCounter(grant, 6)

	mou := suite.createTestMou(models.Mou{})
	project := suite.createTestProject(models.Project{
		MouID:         &mou.ID,
		State:         "Khartoum",
		FundingStatus: models.FundingStatusCommitted,
	})

	preview, err := ledger.Preview(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Require().NoError(err)
	suite.Require().Len(preview, 1)
	suite.Assert().Equal("LCC-ABC-KH-0125-0007", preview[0].Serial)

	// Nothing was written: the counter, project and MOU are untouched
	var reloadedGrant models.Grant
	suite.Require().NoError(models.DB.First(&reloadedGrant, grant.ID).Error)
	suite.Assert().Equal(uint64(6), reloadedGrant.MaxWorkplanSequence)

	var reloadedProject models.Project
	suite.Require().NoError(models.DB.First(&reloadedProject, project.ID).Error)
	suite.Assert().Empty(reloadedProject.Serial)

	var reloadedMou models.Mou
	suite.Require().NoError(models.DB.First(&reloadedMou, mou.ID).Error)
	suite.Assert().False(reloadedMou.Assigned)

	// Previewing twice yields the same serials
	again, err := ledger.Preview(models.DB, mou.ID, grant.ID, suite.month("0125"))
	suite.Require().NoError(err)
	suite.Assert().Equal(preview, again)
}
