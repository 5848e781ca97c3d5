package v1

import (
	"net/http"
	"time"

	"github.com/centavo-zero/backend/internal/httputil"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetSummary)

	r.OPTIONS("/spending", httputil.OptionsGet)
	r.GET("/spending", GetSpending)

	r.OPTIONS("/bills", httputil.OptionsGet)
	r.GET("/bills", GetBills)

	r.OPTIONS("/overdue", httputil.OptionsGet)
	r.GET("/overdue", GetOverdue)

	r.OPTIONS("/invoices", httputil.OptionsGet)
	r.GET("/invoices", GetInvoices)

	r.OPTIONS("/alerts", httputil.OptionsGet)
	r.GET("/alerts", GetAlerts)

	r.OPTIONS("/year", httputil.OptionsGet)
	r.GET("/year", GetYearReport)
}

// GetSummary returns income, expenses and the total for the month.
func GetSummary(c *gin.Context) {
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

	summary, err := models.SummaryForMonth(user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// GetSpending returns the absolute spending per category for the month,
// largest first.
func GetSpending(c *gin.Context) {
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

	spending, err := models.SpendingByCategory(user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": spending})
}

// GetBills returns the unpaid bills still ahead in the month: from today
// when the month is the current one, from the first day otherwise.
func GetBills(c *gin.Context) {
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

	now := time.Now()
	from := month.FirstDay()
	if today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC); today.After(from) {
		from = today
	}

	bills, err := models.BillsDueBetween(user.ID, from, month.NextMonth())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: bills})
}

// GetOverdue returns the user's unpaid bills that were due before today.
func GetOverdue(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	overdue, err := models.OverdueBills(user.ID, startOfToday)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: overdue})
}

// GetInvoices returns the open invoice of every card for the month.
func GetInvoices(c *gin.Context) {
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

	invoices, err := models.OpenInvoices(user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

// GetAlerts returns today's digest: bills due today, overdue bills and
// closed card invoices.
func GetAlerts(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	alerts, err := models.AlertsForUser(user.ID, time.Now())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

// GetYearReport returns the annual report for the year query parameter.
func GetYearReport(c *gin.Context) {
	user, err := requestUser(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var query QueryYear
	if err := c.ShouldBindQuery(&query); err != nil || query.Year == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errYearNotSetInQuery.Error()})
		return
	}

	report, err := models.ReportForYear(user.ID, query.Year)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
