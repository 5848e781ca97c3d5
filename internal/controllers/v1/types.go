package v1

import (
	cz_uuid "github.com/centavo-zero/backend/internal/uuid"
)

type URIID struct {
	ID cz_uuid.UUID `uri:"id" binding:"required"` // ID of the resource
}

// QueryMonth is the month selector used by list and dashboard endpoints,
// in YYYY-MM format. Endpoints default to the current month when unset.
type QueryMonth struct {
	Month string `form:"month"`
}

type QueryYear struct {
	Year int `form:"year"`
}
