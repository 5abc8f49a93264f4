package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/models"
)

// RegisterExportRoutes registers the routes for exporting the full dataset
// with the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetExport)
}

type ExportResponse struct {
	Data  map[string]json.RawMessage `json:"data"`  // The exported resources, keyed by model name
	Error *string                    `json:"error"` // The error, if any occurred

	CreationTime time.Time `json:"creationTime" example:"2025-01-07T09:00:00Z"` // Time the export was created
}

// @Summary		Export
// @Description	Exports all resources, including soft-deleted ones, for backup and offline analysis
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	ExportResponse
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	data := make(map[string]json.RawMessage, len(models.Registry))

	for _, model := range models.Registry {
		export, err := model.Export()
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExportResponse{
				Error: &s,
			})
			return
		}

		data[reflect.TypeOf(model).Name()] = export
	}

	c.JSON(http.StatusOK, ExportResponse{
		Data:         data,
		CreationTime: time.Now().In(time.UTC),
	})
}
