package ledger

import "errors"

// Precondition errors. All of them are rejected before any write, so a
// caller can fix the input and retry safely.
var (
	ErrMouAssigned            = errors.New("the MOU is already assigned to a grant, use reassign to move it")
	ErrMouNotAssigned         = errors.New("the MOU is not assigned to a grant yet, use assign")
	ErrNoCommittedProjects    = errors.New("the MOU has no committed projects to assign")
	ErrNoAssignedProjects     = errors.New("the MOU has no previously assigned projects to reassign")
	ErrGrantRequired          = errors.New("a grant must be selected")
	ErrMonthTagRequired       = errors.New("the month tag must be set")
	ErrNoProjects             = errors.New("at least one project must be given")
	ErrProjectNotFreestanding = errors.New("only freestanding projects can be added to an MOU")
	ErrProjectNotCommitted    = errors.New("only committed projects can be added to an MOU")
	ErrProjectNotLinked       = errors.New("the project is not linked to this MOU")
)
