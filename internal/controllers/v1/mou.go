package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/ledger"
	"github.com/lccfund/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterMouRoutes registers the routes for MOUs with
// the RouterGroup that is passed.
func RegisterMouRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMouList)
		r.GET("", GetMous)
		r.POST("", CreateMous)
	}

	// Mou with ID
	{
		r.OPTIONS("/:id", OptionsMouDetail)
		r.GET("/:id", GetMou)
		r.PATCH("/:id", UpdateMou)
		r.DELETE("/:id", DeleteMou)
	}

	// Assignment
	{
		r.OPTIONS("/:id/assign", httputil.OptionsPost)
		r.POST("/:id/assign", AssignMou)
		r.OPTIONS("/:id/reassign", httputil.OptionsPost)
		r.POST("/:id/reassign", ReassignMou)
	}

	// Linkage and derived data
	{
		r.OPTIONS("/:id/projects", httputil.OptionsPostDelete)
		r.POST("/:id/projects", AddMouProjects)
		r.DELETE("/:id/projects", RemoveMouProjects)
		r.OPTIONS("/:id/budget", httputil.OptionsGet)
		r.GET("/:id/budget", GetMouBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MOUs
// @Success		204
// @Router			/v1/mous [options]
func OptionsMouList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MOUs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mous/{id} [options]
func OptionsMouDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Mou{})
}

// @Summary		Create MOUs
// @Description	Creates new MOUs
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		201		{object}	MouCreateResponse
// @Failure		400		{object}	MouCreateResponse
// @Failure		500		{object}	MouCreateResponse
// @Param			mous	body		[]MouEditable	true	"MOUs"
// @Router			/v1/mous [post]
func CreateMous(c *gin.Context) {
	var mous []MouEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &mous)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MouCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MouCreateResponse{}

	for _, editable := range mous {
		mou := editable.model()

		err := models.DB.Create(&mou).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMou(c, mou)
		r.Data = append(r.Data, MouResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List MOUs
// @Description	Returns a list of MOUs
// @Tags			MOUs
// @Produce		json
// @Success		200	{object}	MouListResponse
// @Failure		500	{object}	MouListResponse
// @Router			/v1/mous [get]
// @Param			partnerName		query	string	false	"Filter by partner name"
// @Param			emergencyRoom	query	string	false	"Filter by emergency room"
// @Param			assigned		query	bool	false	"Filter by assignment state"
// @Param			note			query	string	false	"Filter by note"
// @Param			offset			query	uint	false	"The offset of the first MOU returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of MOUs to return. Defaults to 50."
func GetMous(c *gin.Context) {
	var filter MouQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var mous []models.Mou

	// Always sort by partner name
	q := models.DB.
		Order("partner_name ASC").
		Where(filter.model(), queryFields...)

	// MOUs have a partner name instead of a name column
	if filter.PartnerName != "" {
		q = q.Where("partner_name LIKE ?", fmt.Sprintf("%%%s%%", filter.PartnerName))
	} else if slices.Contains(setFields, "PartnerName") {
		q = q.Where("partner_name = ''")
	}

	q = stringFilters(models.DB, q, setFields, "", filter.Note, "")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all MOUs and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&mous).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MouListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MouListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Mou, 0)
	for _, mou := range mous {
		apiResources = append(apiResources, newMou(c, mou))
	}

	c.JSON(http.StatusOK, MouListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get MOU
// @Description	Returns a specific MOU
// @Tags			MOUs
// @Produce		json
// @Success		200	{object}	MouResponse
// @Failure		400	{object}	MouResponse
// @Failure		404	{object}	MouResponse
// @Failure		500	{object}	MouResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mous/{id} [get]
func GetMou(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	var mou models.Mou
	err = models.DB.First(&mou, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMou(c, mou)
	c.JSON(http.StatusOK, MouResponse{Data: &apiResource})
}

// @Summary		Assign MOU to grant
// @Description	Issues serials for all committed projects of an unassigned MOU, scoped to the grant, and flips the MOU to assigned. Individual serial writes can fail without aborting the batch; inspect the per-project results.
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		200			{object}	AssignmentResponse
// @Failure		400			{object}	AssignmentResponse
// @Failure		404			{object}	AssignmentResponse
// @Failure		500			{object}	AssignmentResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			assignment	body		AssignmentRequest	true	"Assignment"
// @Router			/v1/mous/{id}/assign [post]
func AssignMou(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	var request AssignmentRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	result, err := ledger.Assign(models.DB, uri.ID.UUID, request.GrantID.UUID, request.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AssignmentResponse{Data: &result})
}

// @Summary		Reassign MOU to another grant
// @Description	Moves an assigned MOU to another grant. The previously assigned projects receive fresh serials from the new grant's counter; the old grant's counter is not decremented.
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		200			{object}	AssignmentResponse
// @Failure		400			{object}	AssignmentResponse
// @Failure		404			{object}	AssignmentResponse
// @Failure		500			{object}	AssignmentResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			assignment	body		AssignmentRequest	true	"Assignment"
// @Router			/v1/mous/{id}/reassign [post]
func ReassignMou(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	var request AssignmentRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	result, err := ledger.Reassign(models.DB, uri.ID.UUID, request.GrantID.UUID, request.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AssignmentResponse{Data: &result})
}

// @Summary		Link projects to MOU
// @Description	Links freestanding committed projects to an unassigned MOU. All projects are validated before anything is written; the MOU document is regenerated before the call returns.
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		200			{object}	DocumentResponse
// @Failure		400			{object}	DocumentResponse
// @Failure		404			{object}	DocumentResponse
// @Failure		500			{object}	DocumentResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			linkage		body		LinkageRequest	true	"Projects"
// @Router			/v1/mous/{id}/projects [post]
func AddMouProjects(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	var request LinkageRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	document, err := ledger.AddProjects(models.DB, uri.ID.UUID, projectIDs(request))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: &document})
}

// @Summary		Unlink projects from MOU
// @Description	Unlinks projects from an unassigned MOU and regenerates the MOU document. Unlinking from an assigned MOU is rejected, reassign instead.
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		200			{object}	DocumentResponse
// @Failure		400			{object}	DocumentResponse
// @Failure		404			{object}	DocumentResponse
// @Failure		500			{object}	DocumentResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			linkage		body		LinkageRequest	true	"Projects"
// @Router			/v1/mous/{id}/projects [delete]
func RemoveMouProjects(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	var request LinkageRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	document, err := ledger.RemoveProjects(models.DB, uri.ID.UUID, projectIDs(request))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: &document})
}

// @Summary		Get MOU budget
// @Description	Returns the MOU's budget rollup: expense subtotals by activity category per project, project subtotals and the grand total. Deterministic for an unchanged project set.
// @Tags			MOUs
// @Produce		json
// @Success		200	{object}	BudgetRollupResponse
// @Failure		400	{object}	BudgetRollupResponse
// @Failure		404	{object}	BudgetRollupResponse
// @Failure		500	{object}	BudgetRollupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mous/{id}/budget [get]
func GetMouBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetRollupResponse{
			Error: &s,
		})
		return
	}

	var mou models.Mou
	err = models.DB.First(&mou, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetRollupResponse{
			Error: &s,
		})
		return
	}

	projects, err := mou.Projects(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetRollupResponse{
			Error: &s,
		})
		return
	}

	rollup := ledger.Rollup(projects)
	c.JSON(http.StatusOK, BudgetRollupResponse{Data: &rollup})
}

// @Summary		Update MOU
// @Description	Update an existing MOU. Only values to be updated need to be specified. The derived document cannot be updated directly.
// @Tags			MOUs
// @Accept			json
// @Produce		json
// @Success		200	{object}	MouResponse
// @Failure		400	{object}	MouResponse
// @Failure		404	{object}	MouResponse
// @Failure		500	{object}	MouResponse
// @Param			id	path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mou	body		MouEditable	true	"MOU"
// @Router			/v1/mous/{id} [patch]
func UpdateMou(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	var mou models.Mou
	err = models.DB.First(&mou, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MouEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	var data MouEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&mou).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MouResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMou(c, mou)
	c.JSON(http.StatusOK, MouResponse{Data: &apiResource})
}

// @Summary		Delete MOU
// @Description	Deletes an MOU
// @Tags			MOUs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mous/{id} [delete]
func DeleteMou(c *gin.Context) {
	deleteResource[models.Mou](c)
}

func projectIDs(request LinkageRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(request.ProjectIDs))
	for _, id := range request.ProjectIDs {
		ids = append(ids, id.UUID)
	}

	return ids
}
