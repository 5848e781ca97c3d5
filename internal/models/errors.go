package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrCardNameNotUnique     = errors.New("the card name must be unique for the user")
	ErrGoalCategoryNotUnique = errors.New("there already is a goal for this category")
	ErrEmailNotUnique        = errors.New("this email address is already registered")

	ErrDayOutOfRange       = errors.New("days of the month must be between 1 and 31")
	ErrAmountNotPositive   = errors.New("the amount must be larger than zero")
	ErrDescriptionRequired = errors.New("the description must not be empty")
)
