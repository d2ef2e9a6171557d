package entity

// PaymentMethod forma de pago configurada por la empresa.
type PaymentMethod struct {
	ID            string
	CompanyID     string
	Code          string // cash, pix, card...
	Name          string
	AcceptsChange bool // true para efectivo
	Active        bool
}
