package request

import "github.com/shopspring/decimal"

type CreateGameRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Duration    int              `json:"duration" validate:"required,gte=1"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	IsActive    *bool            `json:"isActive"`
}

// UpdateGameRequest replaces the editable fields. Image and IsActive keep
// their stored values when omitted.
type UpdateGameRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Duration    int              `json:"duration" validate:"required,gte=1"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	IsActive    *bool            `json:"isActive"`
}
