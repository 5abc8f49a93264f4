package models

import "encoding/json"

// Model is the interface all ledger models implement.
type Model interface {
	Export() (json.RawMessage, error) // All instances of this model for export.
}

// The "Registry" is a slice of all models available
//
// It is maintained so that operations that affect all models do not need to explicitly iterate over every single model,
// increasing the risk of forgetting something when adding a new model
var Registry = []Model{
	Donor{},
	Grant{},
	Cycle{},
	StateAllocation{},
	Mou{},
	Project{},
	StateCode{},
}

func exportAll[M any]() (json.RawMessage, error) {
	var resources []M
	err := DB.Unscoped().Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(resources)
}

func (Donor) Export() (json.RawMessage, error)           { return exportAll[Donor]() }
func (Grant) Export() (json.RawMessage, error)           { return exportAll[Grant]() }
func (Cycle) Export() (json.RawMessage, error)           { return exportAll[Cycle]() }
func (StateAllocation) Export() (json.RawMessage, error) { return exportAll[StateAllocation]() }
func (Mou) Export() (json.RawMessage, error)             { return exportAll[Mou]() }
func (Project) Export() (json.RawMessage, error)         { return exportAll[Project]() }
func (StateCode) Export() (json.RawMessage, error)       { return exportAll[StateCode]() }
