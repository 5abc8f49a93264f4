package v1

import (
	"errors"
	"net/http"

	"github.com/lccfund/backend/internal/models"
)

// httpError is used for error responses that do not contain resource data.
type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
//
// Precondition and validation errors map to 400, a missing resource to 404.
// Only errors the user cannot do anything about become a 500.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
