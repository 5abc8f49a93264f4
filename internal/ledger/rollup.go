package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CategorySubtotal is the leaf of the budget rollup: the expense subtotal
// for one activity category within one project.
type CategorySubtotal struct {
	Category string          `json:"category" example:"WASH"`
	Subtotal decimal.Decimal `json:"subtotal" example:"1250"`
}

// ProjectRollup is the per-project level of the budget rollup.
type ProjectRollup struct {
	ProjectID  uuid.UUID          `json:"projectId"`
	Name       string             `json:"name"`
	Categories []CategorySubtotal `json:"categories"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
}

// BudgetRollup is the three-level budget table of an MOU: category subtotals
// per project, project subtotals and the grand total.
type BudgetRollup struct {
	Projects []ProjectRollup `json:"projects"`
	Total    decimal.Decimal `json:"total"`
}

// Rollup folds the projects' expense lines into a BudgetRollup.
//
// It is a pure read-side projection and deterministic: projects are ordered
// by submission, categories alphabetically, so two calls on an unchanged
// project set produce identical output.
func Rollup(projects []models.Project) BudgetRollup {
	rollup := BudgetRollup{
		Projects: make([]ProjectRollup, 0, len(projects)),
		Total:    decimal.Zero,
	}

	ordered := make([]models.Project, len(projects))
	copy(ordered, projects)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SubmittedAt.Equal(ordered[j].SubmittedAt) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
	})

	for _, project := range ordered {
		byCategory := make(map[string]decimal.Decimal)
		for _, line := range project.Expenses {
			byCategory[line.Category] = byCategory[line.Category].Add(line.TotalCost)
		}

		categories := make([]CategorySubtotal, 0, len(byCategory))
		for category, subtotal := range byCategory {
			categories = append(categories, CategorySubtotal{Category: category, Subtotal: subtotal})
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

		subtotal := project.TotalCost()
		rollup.Projects = append(rollup.Projects, ProjectRollup{
			ProjectID:  project.ID,
			Name:       project.Name,
			Categories: categories,
			Subtotal:   subtotal,
		})
		rollup.Total = rollup.Total.Add(subtotal)
	}

	return rollup
}

// Document is the derived part of an MOU: the values regenerated from the
// linked projects whenever the linkage changes.
type Document struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Objectives    string          `json:"objectives"`
	Beneficiaries uint            `json:"beneficiaries"`
}

// Aggregate computes the MOU document for a set of projects.
//
// Objectives are the planned activities of all projects, one line each, in
// rollup order. Like Rollup, the output is deterministic for an unchanged
// project set.
func Aggregate(projects []models.Project) Document {
	rollup := Rollup(projects)

	var beneficiaries uint
	var objectives []string

	seen := make(map[string]bool)
	for _, project := range projects {
		beneficiaries += project.Beneficiaries()
	}

	// Walk in rollup order so the objectives text is stable
	byID := make(map[uuid.UUID]models.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	for _, entry := range rollup.Projects {
		project := byID[entry.ProjectID]
		for _, line := range project.PlannedActivities {
			text := fmt.Sprintf("%s: %s", line.Category, line.Description)
			if !seen[text] {
				seen[text] = true
				objectives = append(objectives, text)
			}
		}
	}

	return Document{
		TotalAmount:   rollup.Total,
		Objectives:    strings.Join(objectives, "\n"),
		Beneficiaries: beneficiaries,
	}
}
