package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type SortField string

const (
	SortByUsername SortField = "username"
	SortByPool     SortField = "pool"
	SortBySeason   SortField = "season"
	SortByWeek     SortField = "week"
	SortByAmount   SortField = "amount"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Reverse() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ViewSelection is the user controlled state of a payout screen.
type ViewSelection struct {
	Season        Season        `json:"season" validate:"omitempty,max=16,alphanum"`
	Username      string        `json:"username" validate:"omitempty,max=64,printascii"`
	SortField     SortField     `json:"sort" validate:"required,oneof=username pool season week amount"`
	SortDirection SortDirection `json:"dir" validate:"required,oneof=asc desc"`
	Page          int           `json:"page" validate:"min=1"`
}

var validate = validator.New()

// Validate checks that a selection restored from a request is usable.
func (s ViewSelection) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}
	return nil
}
