package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterStateAllocationRoutes registers the routes for state allocations
// with the RouterGroup that is passed.
func RegisterStateAllocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStateAllocationList)
		r.GET("", GetStateAllocations)
		r.POST("", CreateStateAllocations)
	}

	// StateAllocation with ID
	{
		r.OPTIONS("/:id", OptionsStateAllocationDetail)
		r.GET("/:id", GetStateAllocation)
		r.PATCH("/:id", UpdateStateAllocation)
		r.DELETE("/:id", DeleteStateAllocation)
	}
}

// RegisterStateRoutes registers the per-state summary route with
// the RouterGroup that is passed.
func RegisterStateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:state/summary", httputil.OptionsGet)
	r.GET("/:state/summary", GetStateSummary)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			StateAllocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsStateAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			StateAllocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [options]
func OptionsStateAllocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.StateAllocation{})
}

// @Summary		Create state allocations
// @Description	Creates new state allocations
// @Tags			StateAllocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	StateAllocationCreateResponse
// @Failure		400			{object}	StateAllocationCreateResponse
// @Failure		404			{object}	StateAllocationCreateResponse
// @Failure		500			{object}	StateAllocationCreateResponse
// @Param			allocations	body		[]StateAllocationEditable	true	"StateAllocations"
// @Router			/v1/allocations [post]
func CreateStateAllocations(c *gin.Context) {
	var allocations []StateAllocationEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &allocations)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StateAllocationCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := StateAllocationCreateResponse{}

	for _, editable := range allocations {
		allocation := editable.model()

		err := models.DB.Create(&allocation).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newStateAllocation(c, allocation)
		r.Data = append(r.Data, StateAllocationResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List state allocations
// @Description	Returns a list of state allocations
// @Tags			StateAllocations
// @Produce		json
// @Success		200	{object}	StateAllocationListResponse
// @Failure		500	{object}	StateAllocationListResponse
// @Router			/v1/allocations [get]
// @Param			cycle		query	string	false	"Filter by cycle ID"
// @Param			state		query	string	false	"Filter by state"
// @Param			decisionNo	query	uint	false	"Filter by decision round"
// @Param			note		query	string	false	"Filter by note"
// @Param			offset		query	uint	false	"The offset of the first StateAllocation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of StateAllocations to return. Defaults to 50."
func GetStateAllocations(c *gin.Context) {
	var filter StateAllocationQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var allocations []models.StateAllocation

	q := models.DB.
		Order("state ASC, decision_no ASC").
		Where(filter.model(), queryFields...)

	// Allocations have no name, only the note is searchable
	q = stringFilters(models.DB, q, setFields, "", filter.Note, "")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all StateAllocations and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&allocations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StateAllocationListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StateAllocationListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]StateAllocation, 0)
	for _, allocation := range allocations {
		apiResources = append(apiResources, newStateAllocation(c, allocation))
	}

	c.JSON(http.StatusOK, StateAllocationListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get state allocation
// @Description	Returns a specific state allocation
// @Tags			StateAllocations
// @Produce		json
// @Success		200	{object}	StateAllocationResponse
// @Failure		400	{object}	StateAllocationResponse
// @Failure		404	{object}	StateAllocationResponse
// @Failure		500	{object}	StateAllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [get]
func GetStateAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	var allocation models.StateAllocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	apiResource := newStateAllocation(c, allocation)
	c.JSON(http.StatusOK, StateAllocationResponse{Data: &apiResource})
}

// @Summary		Get state summary
// @Description	Returns the committed/allocated/remaining partition for one state across all cycles and decision rounds. Recomputed from the current rows on every call. A state without allocations or projects yields zero sums.
// @Tags			StateAllocations
// @Produce		json
// @Success		200		{object}	StateSummaryResponse
// @Failure		500		{object}	StateSummaryResponse
// @Param			state	path		string	true	"Name of the state"
// @Router			/v1/states/{state}/summary [get]
func GetStateSummary(c *gin.Context) {
	var uri URIState
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateSummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := models.StateSummary(models.DB, uri.State)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, StateSummaryResponse{Data: &summary})
}

// @Summary		Update state allocation
// @Description	Update an existing state allocation. Only values to be updated need to be specified.
// @Tags			StateAllocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	StateAllocationResponse
// @Failure		400			{object}	StateAllocationResponse
// @Failure		404			{object}	StateAllocationResponse
// @Failure		500			{object}	StateAllocationResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			allocation	body		StateAllocationEditable	true	"StateAllocation"
// @Router			/v1/allocations/{id} [patch]
func UpdateStateAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	var allocation models.StateAllocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, StateAllocationEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	var data StateAllocationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&allocation).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StateAllocationResponse{
			Error: &s,
		})
		return
	}

	apiResource := newStateAllocation(c, allocation)
	c.JSON(http.StatusOK, StateAllocationResponse{Data: &apiResource})
}

// @Summary		Delete state allocation
// @Description	Deletes a state allocation
// @Tags			StateAllocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [delete]
func DeleteStateAllocation(c *gin.Context) {
	deleteResource[models.StateAllocation](c)
}
