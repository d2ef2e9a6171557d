package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento de cupón.
const (
	DiscountTypeFixed      = "FIXED"
	DiscountTypePercentage = "PERCENTAGE"
)

// Coupon cupón de descuento de la empresa. CurrentUses solo crece y nunca supera MaxUses.
type Coupon struct {
	ID            string
	CompanyID     string
	Code          string
	DiscountType  string // FIXED, PERCENTAGE
	DiscountValue decimal.Decimal
	MinOrderValue decimal.Decimal
	ValidUntil    *time.Time // nil = sin vencimiento
	MaxUses       *int       // nil = ilimitado
	CurrentUses   int
	Active        bool
}

// CouponRedemption vincula un pedido con el cupón aplicado. Una por pedido y cupón.
type CouponRedemption struct {
	ID              string
	OrderID         string
	CouponID        string
	DiscountApplied decimal.Decimal
	CreatedAt       time.Time
}
