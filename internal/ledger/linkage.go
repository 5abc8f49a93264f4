package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddProjects attaches freestanding committed projects to an unassigned MOU
// and regenerates the MOU's derived document before returning, so callers
// never see a stale total.
//
// All projects are validated before the first write; an invalid project
// rejects the whole call without mutating any row. The linkage change and
// the regeneration run in one transaction with the MOU row locked, so two
// linkage calls on the same MOU cannot interleave.
func AddProjects(db *gorm.DB, mouID uuid.UUID, projectIDs []uuid.UUID) (Document, error) {
	if len(projectIDs) == 0 {
		return Document{}, ErrNoProjects
	}

	var document Document
	err := db.Transaction(func(tx *gorm.DB) error {
		var mou models.Mou
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mou, mouID).Error
		if err != nil {
			return err
		}

		if mou.Assigned {
			return ErrMouAssigned
		}

		projects := make([]models.Project, 0, len(projectIDs))
		for _, id := range projectIDs {
			var project models.Project
			err := tx.First(&project, id).Error
			if err != nil {
				return err
			}

			if project.MouID != nil {
				return fmt.Errorf("%w: %s", ErrProjectNotFreestanding, project.ID)
			}

			if project.FundingStatus != models.FundingStatusCommitted {
				return fmt.Errorf("%w: %s", ErrProjectNotCommitted, project.ID)
			}

			projects = append(projects, project)
		}

		for _, project := range projects {
			err := tx.Model(&project).Update("mou_id", mou.ID).Error
			if err != nil {
				return err
			}
		}

		document, err = regenerate(tx, &mou)
		return err
	})
	if err != nil {
		return Document{}, err
	}

	return document, nil
}

// RemoveProjects detaches projects from an unassigned MOU and regenerates
// the derived document.
//
// Removing projects from an assigned MOU is rejected: serials were already
// issued, and detaching a funded project would silently orphan money. The
// caller must reassign instead.
func RemoveProjects(db *gorm.DB, mouID uuid.UUID, projectIDs []uuid.UUID) (Document, error) {
	if len(projectIDs) == 0 {
		return Document{}, ErrNoProjects
	}

	var document Document
	err := db.Transaction(func(tx *gorm.DB) error {
		var mou models.Mou
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mou, mouID).Error
		if err != nil {
			return err
		}

		if mou.Assigned {
			return ErrMouAssigned
		}

		projects := make([]models.Project, 0, len(projectIDs))
		for _, id := range projectIDs {
			var project models.Project
			err := tx.First(&project, id).Error
			if err != nil {
				return err
			}

			if project.MouID == nil || *project.MouID != mou.ID {
				return fmt.Errorf("%w: %s", ErrProjectNotLinked, project.ID)
			}

			projects = append(projects, project)
		}

		for _, project := range projects {
			err := tx.Model(&project).Update("mou_id", nil).Error
			if err != nil {
				return err
			}
		}

		document, err = regenerate(tx, &mou)
		return err
	})
	if err != nil {
		return Document{}, err
	}

	return document, nil
}

// Regenerate recomputes an MOU's derived document from its current linked
// projects and persists it. The MOU's total amount is never ground truth on
// its own, it is always derivable from the projects.
func Regenerate(db *gorm.DB, mouID uuid.UUID) (Document, error) {
	var document Document
	err := db.Transaction(func(tx *gorm.DB) error {
		var mou models.Mou
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mou, mouID).Error
		if err != nil {
			return err
		}

		document, err = regenerate(tx, &mou)
		return err
	})
	if err != nil {
		return Document{}, err
	}

	return document, nil
}

func regenerate(tx *gorm.DB, mou *models.Mou) (Document, error) {
	projects, err := mou.Projects(tx)
	if err != nil {
		return Document{}, err
	}

	document := Aggregate(projects)

	err = tx.Model(mou).Updates(map[string]interface{}{
		"total_amount":  document.TotalAmount,
		"objectives":    document.Objectives,
		"beneficiaries": document.Beneficiaries,
	}).Error
	if err != nil {
		return Document{}, err
	}

	return document, nil
}
