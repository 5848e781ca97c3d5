package v1

import (
	"time"

	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestUser resolves the authenticated user from the X-User-ID header.
// Authentication itself happens in the fronting layer, the backend trusts
// the header and only verifies that the user exists.
func requestUser(c *gin.Context) (models.User, error) {
	raw := c.GetHeader("X-User-ID")

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return models.User{}, errUserHeaderRequired
	}

	var user models.User
	err = models.DB.First(&user, id).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// queryMonth reads the month query parameter, defaulting to the current
// month.
func queryMonth(c *gin.Context) (types.Month, error) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		return types.Month{}, errMonthInvalid
	}

	if query.Month == "" {
		return types.MonthOf(time.Now()), nil
	}

	month, err := types.ParseMonth(query.Month)
	if err != nil {
		return types.Month{}, errMonthInvalid
	}

	return month, nil
}
