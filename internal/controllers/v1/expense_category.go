package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterExpenseCategoryRoutes registers the routes for expense categories with
// the RouterGroup that is passed.
func RegisterExpenseCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseCategoryList)
		r.GET("", GetExpenseCategories)
		r.POST("", CreateExpenseCategories)
	}

	// Expense category with ID
	{
		r.OPTIONS("/:id", OptionsExpenseCategoryDetail)
		r.GET("/:id", GetExpenseCategory)
		r.PATCH("/:id", UpdateExpenseCategory)
		r.DELETE("/:id", DeleteExpenseCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expense Categories
// @Success		204
// @Router			/v1/expense-categories [options]
func OptionsExpenseCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expense Categories
// @Security		BearerAuth
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-categories/{id} [options]
func OptionsExpenseCategoryDetail(c *gin.Context) {
	resourceOptionsDetail[models.ExpenseCategory](c)
}

// @Summary		Create expense categories
// @Description	Creates new expense categories
// @Tags			Expense Categories
// @Produce		json
// @Security		BearerAuth
// @Success		201			{object}	ExpenseCategoryCreateResponse
// @Failure		400			{object}	ExpenseCategoryCreateResponse
// @Failure		500			{object}	ExpenseCategoryCreateResponse
// @Param			categories	body		[]ExpenseCategoryEditable	true	"Expense categories"
// @Router			/v1/expense-categories [post]
func CreateExpenseCategories(c *gin.Context) {
	var editables []ExpenseCategoryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCategoryCreateResponse{
			Error: &e,
		})
		return
	}

	owner := auth.User(c)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCategoryCreateResponse{}

	for _, editable := range editables {
		category := editable.model(owner.ID)

		err = models.DB.Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newExpenseCategory(c, category)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ExpenseCategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get expense categories
// @Description	Returns a list of the expense categories of the authenticated user
// @Tags			Expense Categories
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseCategoryListResponse
// @Failure		400	{object}	ExpenseCategoryListResponse
// @Failure		500	{object}	ExpenseCategoryListResponse
// @Router			/v1/expense-categories [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetExpenseCategories(c *gin.Context) {
	var filter ExpenseCategoryQueryFilter

	if err := c.ShouldBind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where("owner_id = ?", auth.User(c).ID)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var categories []models.ExpenseCategory
	err := q.Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ExpenseCategory, 0)
	for _, category := range categories {
		apiResource, err := newExpenseCategory(c, category)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExpenseCategoryListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ExpenseCategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense category
// @Description	Returns a specific expense category
// @Tags			Expense Categories
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseCategoryResponse
// @Failure		400	{object}	ExpenseCategoryResponse
// @Failure		404	{object}	ExpenseCategoryResponse
// @Failure		500	{object}	ExpenseCategoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-categories/{id} [get]
func GetExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	category, err := getOwned[models.ExpenseCategory](auth.User(c).ID, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	data, err := newExpenseCategory(c, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ExpenseCategoryResponse{Data: &data})
}

// @Summary		Update expense category
// @Description	Update an existing expense category. Only values to be updated need to be specified. The default category cannot be updated.
// @Tags			Expense Categories
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	ExpenseCategoryResponse
// @Failure		400			{object}	ExpenseCategoryResponse
// @Failure		404			{object}	ExpenseCategoryResponse
// @Failure		500			{object}	ExpenseCategoryResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		ExpenseCategoryEditable	true	"Expense category"
// @Router			/v1/expense-categories/{id} [patch]
func UpdateExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	owner := auth.User(c)

	category, err := getOwned[models.ExpenseCategory](owner.ID, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseCategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseCategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model(owner.ID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	category, err = getOwned[models.ExpenseCategory](owner.ID, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	r, err := newExpenseCategory(c, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ExpenseCategoryResponse{Data: &r})
}

// @Summary		Delete expense category
// @Description	Deletes an expense category. Its expenses are moved to the default category.
// @Tags			Expense Categories
// @Security		BearerAuth
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-categories/{id} [delete]
func DeleteExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteCategory(models.DB, auth.User(c).ID, uri.ID.UUID, models.KindExpense)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
