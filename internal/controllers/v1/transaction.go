package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/centavo-zero/backend/internal/httputil"
	"github.com/centavo-zero/backend/internal/installment"
	"github.com/centavo-zero/backend/internal/metrics"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var transactionTypes = []models.TransactionType{
	models.TypeFixed,
	models.TypeVariable,
	models.TypeCard,
	models.TypeIncome,
	models.TypeAdjustment,
}

func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}
	{
		r.OPTIONS("/installments", OptionsTransactionInstallments)
		r.POST("/installments", CreateInstallmentPurchase)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
	{
		r.POST("/:id/pay", PayTransaction)
	}
}

// TransactionEditable are the fields a client can set on a transaction.
type TransactionEditable struct {
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          models.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	DueDate       time.Time              `json:"dueDate"`
	IsPaid        bool                   `json:"isPaid"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
	Recurring     bool                   `json:"recurring"`
	RecurringDay  int                    `json:"recurringDay"`
	CardID        *uuid.UUID             `json:"cardId"`
}

func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:        userID,
		CardID:        editable.CardID,
		Description:   editable.Description,
		Amount:        editable.Amount,
		Type:          editable.Type,
		Category:      editable.Category,
		DueDate:       editable.DueDate,
		IsPaid:        editable.IsPaid,
		PaymentMethod: editable.PaymentMethod,
		Recurring:     editable.Recurring,
		RecurringDay:  editable.RecurringDay,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error,omitempty"`
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`
	Error *string              `json:"error,omitempty"`
}

func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionInstallments(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// GetTransactions returns the user's transactions for a month, current
// month by default.
func GetTransactions(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	month, err := queryMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := models.TransactionsForMonth(user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// CreateTransactions creates the posted transactions for the user. Income,
// variable expenses and recurring bills are all plain transactions here;
// only card installment purchases have their own endpoint.
func CreateTransactions(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editables []TransactionEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions := make([]models.Transaction, 0, len(editables))
	for _, editable := range editables {
		if !slices.Contains(transactionTypes, editable.Type) {
			c.JSON(http.StatusBadRequest, httpError{Error: errTransactionTypeInvalid.Error()})
			return
		}

		transaction := editable.model(user.ID)

		err = models.DB.Create(&transaction).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		metrics.TransactionsCreated.WithLabelValues(string(transaction.Type)).Inc()
		transactions = append(transactions, transaction)
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Data: transactions})
}

// InstallmentEditable describes a card purchase to split into monthly
// installments on the card's billing cycle.
type InstallmentEditable struct {
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Installments int             `json:"installments"`
	CardID       uuid.UUID       `json:"cardId"`
	StartDate    *time.Time      `json:"startDate"`
}

// CreateInstallmentPurchase splits a card purchase into installments, one
// transaction per charge, scheduled on the card's closing cycle.
func CreateInstallmentPurchase(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable InstallmentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var card models.Card
	err = models.DB.First(&card, "id = ? AND user_id = ?", editable.CardID, user.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	start := time.Now()
	if editable.StartDate != nil {
		start = *editable.StartDate
	}

	items, err := installment.BuildItems(installment.BuildInput{
		TotalAmount:  editable.TotalAmount,
		Installments: editable.Installments,
		DueDay:       card.DueDay,
		StartDate:    start,
		ClosingDay:   card.ClosingDay,
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions := make([]models.Transaction, len(items))
	for i, item := range items {
		transactions[i] = models.Transaction{
			UserID:            user.ID,
			CardID:            &card.ID,
			Description:       fmt.Sprintf("%s (%d/%d)", editable.Description, item.Number, item.Total),
			Category:          editable.Description,
			Amount:            money.FromCents(item.Cents),
			Type:              models.TypeCard,
			DueDate:           item.DueDate,
			InstallmentNumber: item.Number,
			InstallmentTotal:  item.Total,
		}
	}

	err = models.DB.Create(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	metrics.TransactionsCreated.WithLabelValues(string(models.TypeCard)).Add(float64(len(transactions)))
	c.JSON(http.StatusCreated, TransactionListResponse{Data: transactions})
}

func getUserTransaction(c *gin.Context) (models.Transaction, bool) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Transaction{}, false
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Transaction{}, false
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, user.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Transaction{}, false
	}

	return transaction, true
}

func GetTransaction(c *gin.Context) {
	transaction, ok := getUserTransaction(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

func UpdateTransaction(c *gin.Context) {
	transaction, ok := getUserTransaction(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model(transaction.UserID)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

func DeleteTransaction(c *gin.Context) {
	transaction, ok := getUserTransaction(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// PayTransaction marks the transaction as paid now.
func PayTransaction(c *gin.Context) {
	transaction, ok := getUserTransaction(c)
	if !ok {
		return
	}

	transaction.MarkPaid(time.Now().In(time.UTC))

	err := models.DB.Save(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}
