package entity

import "github.com/shopspring/decimal"

type Game struct {
	Base
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Duration    int             `db:"duration"`
	Image       *string         `db:"image"`
	IsActive    bool            `db:"is_active"`
}
