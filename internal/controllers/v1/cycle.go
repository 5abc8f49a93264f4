package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCycleRoutes registers the routes for cycles with
// the RouterGroup that is passed.
func RegisterCycleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCycleList)
		r.GET("", GetCycles)
		r.POST("", CreateCycles)
	}

	// Cycle with ID
	{
		r.OPTIONS("/:id", OptionsCycleDetail)
		r.GET("/:id", GetCycle)
		r.PATCH("/:id", UpdateCycle)
		r.DELETE("/:id", DeleteCycle)
	}

	// Derived data
	{
		r.OPTIONS("/:id/summary", httputil.OptionsGet)
		r.GET("/:id/summary", GetCycleSummary)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cycles
// @Success		204
// @Router			/v1/cycles [options]
func OptionsCycleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cycles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cycles/{id} [options]
func OptionsCycleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Cycle{})
}

// @Summary		Create cycles
// @Description	Creates new distribution cycles
// @Tags			Cycles
// @Accept			json
// @Produce		json
// @Success		201		{object}	CycleCreateResponse
// @Failure		400		{object}	CycleCreateResponse
// @Failure		404		{object}	CycleCreateResponse
// @Failure		500		{object}	CycleCreateResponse
// @Param			cycles	body		[]CycleEditable	true	"Cycles"
// @Router			/v1/cycles [post]
func CreateCycles(c *gin.Context) {
	var cycles []CycleEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &cycles)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CycleCreateResponse{}

	for _, editable := range cycles {
		cycle := editable.model()

		err := models.DB.Create(&cycle).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCycle(c, cycle)
		r.Data = append(r.Data, CycleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List cycles
// @Description	Returns a list of distribution cycles
// @Tags			Cycles
// @Produce		json
// @Success		200	{object}	CycleListResponse
// @Failure		500	{object}	CycleListResponse
// @Router			/v1/cycles [get]
// @Param			grant	query	string	false	"Filter by grant ID"
// @Param			year	query	uint	false	"Filter by calendar year"
// @Param			type	query	string	false	"Filter by payout mode"
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Cycle returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Cycles to return. Defaults to 50."
func GetCycles(c *gin.Context) {
	var filter CycleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var cycles []models.Cycle

	// Most recent cycles first
	q := models.DB.
		Order("year DESC, name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Cycles and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&cycles).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Cycle, 0)
	for _, cycle := range cycles {
		apiResources = append(apiResources, newCycle(c, cycle))
	}

	c.JSON(http.StatusOK, CycleListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get cycle
// @Description	Returns a specific distribution cycle
// @Tags			Cycles
// @Produce		json
// @Success		200	{object}	CycleResponse
// @Failure		400	{object}	CycleResponse
// @Failure		404	{object}	CycleResponse
// @Failure		500	{object}	CycleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cycles/{id} [get]
func GetCycle(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	var cycle models.Cycle
	err = models.DB.First(&cycle, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCycle(c, cycle)
	c.JSON(http.StatusOK, CycleResponse{Data: &apiResource})
}

// @Summary		Get cycle summary
// @Description	Returns how much of the cycle's included amount has been subdivided into state allocations. Recomputed from the current rows on every call.
// @Tags			Cycles
// @Produce		json
// @Success		200	{object}	CycleSummaryResponse
// @Failure		400	{object}	CycleSummaryResponse
// @Failure		404	{object}	CycleSummaryResponse
// @Failure		500	{object}	CycleSummaryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cycles/{id}/summary [get]
func GetCycleSummary(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleSummaryResponse{
			Error: &s,
		})
		return
	}

	var cycle models.Cycle
	err = models.DB.First(&cycle, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleSummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := cycle.Summary(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CycleSummaryResponse{Data: &summary})
}

// @Summary		Update cycle
// @Description	Update an existing distribution cycle. Only values to be updated need to be specified.
// @Tags			Cycles
// @Accept			json
// @Produce		json
// @Success		200		{object}	CycleResponse
// @Failure		400		{object}	CycleResponse
// @Failure		404		{object}	CycleResponse
// @Failure		500		{object}	CycleResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cycle	body		CycleEditable	true	"Cycle"
// @Router			/v1/cycles/{id} [patch]
func UpdateCycle(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	var cycle models.Cycle
	err = models.DB.First(&cycle, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CycleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	var data CycleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&cycle).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCycle(c, cycle)
	c.JSON(http.StatusOK, CycleResponse{Data: &apiResource})
}

// @Summary		Delete cycle
// @Description	Deletes a distribution cycle
// @Tags			Cycles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cycles/{id} [delete]
func DeleteCycle(c *gin.Context) {
	deleteResource[models.Cycle](c)
}
