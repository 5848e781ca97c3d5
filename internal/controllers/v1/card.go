package v1

import (
	"net/http"

	"github.com/centavo-zero/backend/internal/httputil"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func RegisterCardRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCards)
		r.GET("", GetCards)
		r.POST("", CreateCards)
	}
	{
		r.OPTIONS("/:id", OptionsCardDetail)
		r.GET("/:id", GetCard)
		r.PATCH("/:id", UpdateCard)
	}
}

// CardEditable are the fields a client can set on a card. Cards are never
// deleted through the API, historic installments keep referencing them.
type CardEditable struct {
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closingDay"`
	DueDay     int             `json:"dueDay"`
}

func (editable CardEditable) model(userID uuid.UUID) models.Card {
	return models.Card{
		UserID:     userID,
		Name:       editable.Name,
		Limit:      editable.Limit,
		ClosingDay: editable.ClosingDay,
		DueDay:     editable.DueDay,
	}
}

type CardResponse struct {
	Data  *models.Card `json:"data"`
	Error *string      `json:"error,omitempty"`
}

type CardListResponse struct {
	Data  []models.Card `json:"data"`
	Error *string       `json:"error,omitempty"`
}

func OptionsCards(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCardDetail(c *gin.Context) {
	c.Header("allow", "GET, PATCH")
	c.Status(http.StatusNoContent)
}

// GetCards lists the user's cards, oldest first.
func GetCards(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	cards, err := models.CardsForUser(user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CardListResponse{Data: cards})
}

func CreateCards(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editables []CardEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	cards := make([]models.Card, 0, len(editables))
	for _, editable := range editables {
		card := editable.model(user.ID)

		err = models.DB.Create(&card).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		cards = append(cards, card)
	}

	c.JSON(http.StatusCreated, CardListResponse{Data: cards})
}

func getUserCard(c *gin.Context) (models.Card, bool) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Card{}, false
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Card{}, false
	}

	var card models.Card
	err = models.DB.First(&card, "id = ? AND user_id = ?", uri.ID.UUID, user.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Card{}, false
	}

	return card, true
}

func GetCard(c *gin.Context) {
	card, ok := getUserCard(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: &card})
}

func UpdateCard(c *gin.Context) {
	card, ok := getUserCard(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CardEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data CardEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&card).Select("", updateFields...).Updates(data.model(card.UserID)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: &card})
}
