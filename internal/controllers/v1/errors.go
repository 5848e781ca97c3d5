package v1

import (
	"errors"
	"net/http"

	"github.com/centavo-zero/backend/internal/models"
)

type httpError struct {
	Error string `json:"error"`
}

var (
	errUserHeaderRequired     = errors.New("the X-User-ID header must be set to a valid user ID")
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
	errMonthInvalid           = errors.New("the month query parameter must be in YYYY-MM format")
	errYearNotSetInQuery      = errors.New("the year query parameter must be set")
	errWebhookUnauthorized    = errors.New("the webhook secret token is missing or wrong")
)

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, errUserHeaderRequired) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, errWebhookUnauthorized) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}
