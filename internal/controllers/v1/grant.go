package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/ledger"
	"github.com/lccfund/backend/internal/models"
	"github.com/lccfund/backend/internal/types"
	lcc_uuid "github.com/lccfund/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterGrantRoutes registers the routes for grants with
// the RouterGroup that is passed.
func RegisterGrantRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGrantList)
		r.GET("", GetGrants)
		r.POST("", CreateGrants)
	}

	// Grant with ID
	{
		r.OPTIONS("/:id", OptionsGrantDetail)
		r.GET("/:id", GetGrant)
		r.PATCH("/:id", UpdateGrant)
		r.DELETE("/:id", DeleteGrant)
	}

	// Derived data
	{
		r.OPTIONS("/:id/summary", httputil.OptionsGet)
		r.GET("/:id/summary", GetGrantSummary)
		r.OPTIONS("/:id/serials", httputil.OptionsGet)
		r.GET("/:id/serials", GetGrantSerials)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Grants
// @Success		204
// @Router			/v1/grants [options]
func OptionsGrantList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Grants
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/grants/{id} [options]
func OptionsGrantDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Grant{})
}

// @Summary		Create grants
// @Description	Creates new grants
// @Tags			Grants
// @Accept			json
// @Produce		json
// @Success		201		{object}	GrantCreateResponse
// @Failure		400		{object}	GrantCreateResponse
// @Failure		404		{object}	GrantCreateResponse
// @Failure		500		{object}	GrantCreateResponse
// @Param			grants	body		[]GrantEditable	true	"Grants"
// @Router			/v1/grants [post]
func CreateGrants(c *gin.Context) {
	var grants []GrantEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &grants)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GrantCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GrantCreateResponse{}

	for _, editable := range grants {
		grant := editable.model()

		err := models.DB.Create(&grant).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newGrant(c, grant)
		r.Data = append(r.Data, GrantResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List grants
// @Description	Returns a list of grants
// @Tags			Grants
// @Produce		json
// @Success		200	{object}	GrantListResponse
// @Failure		500	{object}	GrantListResponse
// @Router			/v1/grants [get]
// @Param			donor	query	string	false	"Filter by donor ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Grant returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Grants to return. Defaults to 50."
func GetGrants(c *gin.Context) {
	var filter GrantQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var grants []models.Grant

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Grants and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&grants).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GrantListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GrantListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Grant, 0)
	for _, grant := range grants {
		apiResources = append(apiResources, newGrant(c, grant))
	}

	c.JSON(http.StatusOK, GrantListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get grant
// @Description	Returns a specific grant
// @Tags			Grants
// @Produce		json
// @Success		200	{object}	GrantResponse
// @Failure		400	{object}	GrantResponse
// @Failure		404	{object}	GrantResponse
// @Failure		500	{object}	GrantResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/grants/{id} [get]
func GetGrant(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	var grant models.Grant
	err = models.DB.First(&grant, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGrant(c, grant)
	c.JSON(http.StatusOK, GrantResponse{Data: &apiResource})
}

// @Summary		Get grant summary
// @Description	Returns the committed/allocated/remaining partition of the grant and its inclusion into cycles. Recomputed from the current rows on every call.
// @Tags			Grants
// @Produce		json
// @Success		200	{object}	GrantSummaryResponse
// @Failure		400	{object}	GrantSummaryResponse
// @Failure		404	{object}	GrantSummaryResponse
// @Failure		500	{object}	GrantSummaryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/grants/{id}/summary [get]
func GetGrantSummary(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantSummaryResponse{
			Error: &s,
		})
		return
	}

	var grant models.Grant
	err = models.DB.First(&grant, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantSummaryResponse{
			Error: &s,
		})
		return
	}

	projects, err := grant.Summary(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantSummaryResponse{
			Error: &s,
		})
		return
	}

	cycles, err := grant.IncludedSummary(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GrantSummaryResponse{Data: &GrantSummary{
		Projects: projects,
		Cycles:   cycles,
	}})
}

// GrantSerialsQuery are the query parameters for the serial preview.
type GrantSerialsQuery struct {
	Mou   lcc_uuid.UUID  `form:"mou" binding:"required"`   // ID of the MOU to preview serials for
	Month types.MonthTag `form:"month" binding:"required"` // Month tag the serials would carry, MMYY
}

// @Summary		Preview serials
// @Description	Computes the serials an assignment of the MOU to this grant would issue, without issuing anything. The preview is not authoritative, concurrent assignments may advance the sequence counter.
// @Tags			Grants
// @Produce		json
// @Success		200		{object}	SerialPreviewResponse
// @Failure		400		{object}	SerialPreviewResponse
// @Failure		404		{object}	SerialPreviewResponse
// @Failure		500		{object}	SerialPreviewResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mou		query		string	true	"ID of the MOU to preview serials for"
// @Param			month	query		string	true	"Month tag the serials would carry, format MMYY"
// @Router			/v1/grants/{id}/serials [get]
func GetGrantSerials(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SerialPreviewResponse{
			Error: &s,
		})
		return
	}

	var query GrantSerialsQuery
	err = c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SerialPreviewResponse{
			Error: &s,
		})
		return
	}

	preview, err := ledger.Preview(models.DB, query.Mou.UUID, uri.ID.UUID, query.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SerialPreviewResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SerialPreviewResponse{Data: preview})
}

// @Summary		Delete grant
// @Description	Deletes a grant
// @Tags			Grants
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/grants/{id} [delete]
func DeleteGrant(c *gin.Context) {
	deleteResource[models.Grant](c)
}

// @Summary		Update grant
// @Description	Update an existing grant. Only values to be updated need to be specified.
// @Tags			Grants
// @Accept			json
// @Produce		json
// @Success		200		{object}	GrantResponse
// @Failure		400		{object}	GrantResponse
// @Failure		404		{object}	GrantResponse
// @Failure		500		{object}	GrantResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			grant	body		GrantEditable	true	"Grant"
// @Router			/v1/grants/{id} [patch]
func UpdateGrant(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	var grant models.Grant
	err = models.DB.First(&grant, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GrantEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	var data GrantEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&grant).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrantResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGrant(c, grant)
	c.JSON(http.StatusOK, GrantResponse{Data: &apiResource})
}
