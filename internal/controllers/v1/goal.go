package v1

import (
	"net/http"

	"github.com/centavo-zero/backend/internal/httputil"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoals)
		r.GET("", GetGoals)
		r.POST("", CreateGoals)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}
}

// GoalEditable are the fields a client can set on a category goal.
type GoalEditable struct {
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

func (editable GoalEditable) model(userID uuid.UUID) models.CategoryGoal {
	return models.CategoryGoal{
		UserID:       userID,
		Category:     editable.Category,
		MonthlyLimit: editable.MonthlyLimit,
	}
}

type GoalResponse struct {
	Data  *models.CategoryGoal `json:"data"`
	Error *string              `json:"error,omitempty"`
}

type GoalListResponse struct {
	Data  []models.CategoryGoal `json:"data"`
	Error *string               `json:"error,omitempty"`
}

func OptionsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsGoalDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

func GetGoals(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goals []models.CategoryGoal
	err = models.DB.Where(&models.CategoryGoal{UserID: user.ID}).Order("category ASC").Find(&goals).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: goals})
}

func CreateGoals(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editables []GoalEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goals := make([]models.CategoryGoal, 0, len(editables))
	for _, editable := range editables {
		goal := editable.model(user.ID)

		err = models.DB.Create(&goal).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		goals = append(goals, goal)
	}

	c.JSON(http.StatusCreated, GoalListResponse{Data: goals})
}

func getUserGoal(c *gin.Context) (models.CategoryGoal, bool) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.CategoryGoal{}, false
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.CategoryGoal{}, false
	}

	var goal models.CategoryGoal
	err = models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, user.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.CategoryGoal{}, false
	}

	return goal, true
}

func GetGoal(c *gin.Context) {
	goal, ok := getUserGoal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

func UpdateGoal(c *gin.Context) {
	goal, ok := getUserGoal(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data GoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(data.model(goal.UserID)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

func DeleteGoal(c *gin.Context) {
	goal, ok := getUserGoal(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
