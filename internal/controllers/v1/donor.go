package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lccfund/backend/internal/httputil"
	"github.com/lccfund/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterDonorRoutes registers the routes for donors with
// the RouterGroup that is passed.
func RegisterDonorRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDonorList)
		r.GET("", GetDonors)
		r.POST("", CreateDonors)
	}

	// Donor with ID
	{
		r.OPTIONS("/:id", OptionsDonorDetail)
		r.GET("/:id", GetDonor)
		r.PATCH("/:id", UpdateDonor)
		r.DELETE("/:id", DeleteDonor)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donors
// @Success		204
// @Router			/v1/donors [options]
func OptionsDonorList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donors/{id} [options]
func OptionsDonorDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Donor{})
}

// @Summary		Create donors
// @Description	Creates new donors
// @Tags			Donors
// @Accept			json
// @Produce		json
// @Success		201		{object}	DonorCreateResponse
// @Failure		400		{object}	DonorCreateResponse
// @Failure		500		{object}	DonorCreateResponse
// @Param			donors	body		[]DonorEditable	true	"Donors"
// @Router			/v1/donors [post]
func CreateDonors(c *gin.Context) {
	var donors []DonorEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &donors)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonorCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DonorCreateResponse{}

	for _, editable := range donors {
		donor := editable.model()

		err := models.DB.Create(&donor).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newDonor(c, donor)
		r.Data = append(r.Data, DonorResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List donors
// @Description	Returns a list of donors
// @Tags			Donors
// @Produce		json
// @Success		200	{object}	DonorListResponse
// @Failure		500	{object}	DonorListResponse
// @Router			/v1/donors [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			shortCode	query	string	false	"Filter by short code"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Donor returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Donors to return. Defaults to 50."
func GetDonors(c *gin.Context) {
	var filter DonorQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var donors []models.Donor

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Donors and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&donors).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonorListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonorListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Donor, 0)
	for _, donor := range donors {
		apiResources = append(apiResources, newDonor(c, donor))
	}

	c.JSON(http.StatusOK, DonorListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get donor
// @Description	Returns a specific donor
// @Tags			Donors
// @Produce		json
// @Success		200	{object}	DonorResponse
// @Failure		400	{object}	DonorResponse
// @Failure		404	{object}	DonorResponse
// @Failure		500	{object}	DonorResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donors/{id} [get]
func GetDonor(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	var donor models.Donor
	err = models.DB.First(&donor, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	apiResource := newDonor(c, donor)
	c.JSON(http.StatusOK, DonorResponse{Data: &apiResource})
}

// @Summary		Update donor
// @Description	Update an existing donor. Only values to be updated need to be specified.
// @Tags			Donors
// @Accept			json
// @Produce		json
// @Success		200		{object}	DonorResponse
// @Failure		400		{object}	DonorResponse
// @Failure		404		{object}	DonorResponse
// @Failure		500		{object}	DonorResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			donor	body		DonorEditable	true	"Donor"
// @Router			/v1/donors/{id} [patch]
func UpdateDonor(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	var donor models.Donor
	err = models.DB.First(&donor, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DonorEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	var data DonorEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&donor).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonorResponse{
			Error: &s,
		})
		return
	}

	apiResource := newDonor(c, donor)
	c.JSON(http.StatusOK, DonorResponse{Data: &apiResource})
}

// @Summary		Delete donor
// @Description	Deletes a donor
// @Tags			Donors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donors/{id} [delete]
func DeleteDonor(c *gin.Context) {
	deleteResource[models.Donor](c)
}
