package v1

import (
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
)

type URIID struct {
	ID lcc_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIState struct {
	State string `uri:"state" binding:"required" example:"Khartoum"` // Name of the state
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
