// Package ledger orchestrates the allocation and serial-assignment
// operations of the grant portal: assigning MOUs to grants, managing
// MOU-project linkage and computing the derived budget rollup.
package ledger

import (
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/internal/serial"
	"github.com/lccfund/backend/internal/types"
	"gorm.io/gorm"
)

// ProjectResult is the outcome of a serial write for a single project.
//
// Batches continue past individual failures so that operators can see
// exactly which projects succeeded; a failed project keeps its previous
// state and its reserved sequence number is burned, never reissued.
type ProjectResult struct {
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
	Serial    string    `json:"serial,omitempty"`
	Error     *string   `json:"error,omitempty"`
}

// AssignmentResult reports one assign or reassign operation.
type AssignmentResult struct {
	MouID         uuid.UUID       `json:"mouId"`
	GrantID       uuid.UUID       `json:"grantId"`
	FirstSequence uint64          `json:"firstSequence"`
	LastSequence  uint64          `json:"lastSequence"`
	Assigned      int             `json:"assigned"` // Number of projects that received their serial
	Projects      []ProjectResult `json:"projects"`
}

// Assign issues serials for all committed projects of an unassigned MOU,
// scoped to the given grant, and flips the MOU to assigned.
//
// The sequence range is issued atomically with the persistence of the
// grant's high-water mark. The per-project serial writes follow outside
// that transaction and are reported individually.
func Assign(db *gorm.DB, mouID, grantID uuid.UUID, month types.MonthTag) (AssignmentResult, error) {
	if grantID == uuid.Nil {
		return AssignmentResult{}, ErrGrantRequired
	}

	if month.IsZero() {
		return AssignmentResult{}, ErrMonthTagRequired
	}

	var mou models.Mou
	err := db.First(&mou, mouID).Error
	if err != nil {
		return AssignmentResult{}, err
	}

	if mou.Assigned {
		return AssignmentResult{}, ErrMouAssigned
	}

	projects, err := mou.CommittedProjects(db)
	if err != nil {
		return AssignmentResult{}, err
	}

	if len(projects) == 0 {
		return AssignmentResult{}, ErrNoCommittedProjects
	}

	result, err := issueSerials(db, grantID, month, projects)
	if err != nil {
		assignments.WithLabelValues("assign", "error").Inc()
		return AssignmentResult{}, err
	}
	result.MouID = mou.ID

	if result.Assigned > 0 {
		err = db.Model(&mou).Update("assigned", true).Error
		if err != nil {
			return result, err
		}
	}

	assignments.WithLabelValues("assign", "success").Inc()
	return result, nil
}

// Reassign moves an assigned MOU to another grant.
//
// Only projects that were previously assigned (GrantID set) are moved; they
// receive a fresh sequence range from the new grant's counter. The old
// grant's counter is not decremented: issued serials may be printed on
// external documents, so sequence numbers are never reclaimed.
func Reassign(db *gorm.DB, mouID, newGrantID uuid.UUID, month types.MonthTag) (AssignmentResult, error) {
	if newGrantID == uuid.Nil {
		return AssignmentResult{}, ErrGrantRequired
	}

	if month.IsZero() {
		return AssignmentResult{}, ErrMonthTagRequired
	}

	var mou models.Mou
	err := db.First(&mou, mouID).Error
	if err != nil {
		return AssignmentResult{}, err
	}

	if !mou.Assigned {
		return AssignmentResult{}, ErrMouNotAssigned
	}

	projects, err := assignedProjects(db, mou.ID)
	if err != nil {
		return AssignmentResult{}, err
	}

	if len(projects) == 0 {
		return AssignmentResult{}, ErrNoAssignedProjects
	}

	result, err := issueSerials(db, newGrantID, month, projects)
	if err != nil {
		assignments.WithLabelValues("reassign", "error").Inc()
		return AssignmentResult{}, err
	}
	result.MouID = mou.ID

	assignments.WithLabelValues("reassign", "success").Inc()
	return result, nil
}

// PreviewSerial is one entry of a serial preview.
type PreviewSerial struct {
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
	Serial    string    `json:"serial"`
}

// Preview computes the serials an assignment of the MOU to the grant would
// issue, without persisting anything.
//
// The counter is read outside any lock, so the preview is not authoritative:
// another actor may advance the counter before commit. Callers must re-derive
// at commit time instead of trusting a stale preview.
func Preview(db *gorm.DB, mouID, grantID uuid.UUID, month types.MonthTag) ([]PreviewSerial, error) {
	if grantID == uuid.Nil {
		return nil, ErrGrantRequired
	}

	if month.IsZero() {
		return nil, ErrMonthTagRequired
	}

	var mou models.Mou
	err := db.First(&mou, mouID).Error
	if err != nil {
		return nil, err
	}

	var grant models.Grant
	err = db.Preload("Donor").First(&grant, grantID).Error
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if mou.Assigned {
		projects, err = assignedProjects(db, mou.ID)
	} else {
		projects, err = mou.CommittedProjects(db)
	}
	if err != nil {
		return nil, err
	}

	preview := make([]PreviewSerial, 0, len(projects))
	sequence := grant.MaxWorkplanSequence

	for _, project := range projects {
		sequence++

		code, err := models.StateShortCode(db, project.State)
		if err != nil {
			return nil, err
		}

		preview = append(preview, PreviewSerial{
			ProjectID: project.ID,
			Name:      project.Name,
			Serial:    serial.New(grant.Donor.ShortCode, code, month, sequence).String(),
		})
	}

	return preview, nil
}

// issueSerials advances the grant counter by len(projects) in a row-locked
// transaction and then writes each project's serial individually.
//
// GrantID and Serial are written in a single statement per project, so a
// project can never end up with its old serial cleared but no replacement.
func issueSerials(db *gorm.DB, grantID uuid.UUID, month types.MonthTag, projects []models.Project) (AssignmentResult, error) {
	var grant models.Grant
	err := db.Preload("Donor").First(&grant, grantID).Error
	if err != nil {
		return AssignmentResult{}, err
	}

	var first uint64
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		first, _, txErr = grant.IssueSequences(tx, uint64(len(projects)))
		return txErr
	})
	if err != nil {
		return AssignmentResult{}, err
	}

	result := AssignmentResult{
		GrantID:       grant.ID,
		FirstSequence: first,
		LastSequence:  first + uint64(len(projects)) - 1,
	}

	sequence := first
	for _, project := range projects {
		projectResult := ProjectResult{
			ProjectID: project.ID,
			Name:      project.Name,
		}

		code, err := models.StateShortCode(db, project.State)
		if err == nil {
			s := serial.New(grant.Donor.ShortCode, code, month, sequence).String()

			err = db.Model(&project).Updates(map[string]interface{}{
				"grant_id": grant.ID,
				"serial":   s,
			}).Error
			if err == nil {
				projectResult.Serial = s
				result.Assigned++
				serialsIssued.Inc()
			}
		}

		if err != nil {
			e := err.Error()
			projectResult.Error = &e
		}

		result.Projects = append(result.Projects, projectResult)
		sequence++
	}

	return result, nil
}

func assignedProjects(db *gorm.DB, mouID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := db.
		Where("mou_id = ? AND grant_id IS NOT NULL", mouID).
		Order("submitted_at ASC").
		Find(&projects).Error
	return projects, err
}
