package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

type ownedModel interface {
	models.ExpenseCategory | models.IncomeCategory | models.Expense | models.Income
}

// getOwned returns the resource with the ID if it belongs to the owner.
// Resources of other owners are reported as not found.
func getOwned[R ownedModel](ownerID, id uuid.UUID) (R, error) {
	var resource R
	err := models.DB.Where("id = ? AND owner_id = ?", id, ownerID).Take(&resource).Error
	return resource, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R ownedModel](c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getOwned[R](auth.User(c).ID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
