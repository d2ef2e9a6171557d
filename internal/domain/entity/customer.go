package entity

import "time"

// Customer representa el cliente de un pedido. Se crea uno nuevo por pedido (sin deduplicación).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Email     string // opcional
	CreatedAt time.Time
}

// City fila del catálogo de ciudades (code IBGE).
type City struct {
	ID    string
	Code  string
	Name  string
	State string
}

// DeliveryAddress dirección de entrega de un pedido DELIVERY.
type DeliveryAddress struct {
	ID           string
	CompanyID    string
	CustomerID   string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	CityID       string
	CityName     string // resuelto desde el catálogo cuando llega CityID
	State        string
	ZipCode      string
	Reference    string
	CreatedAt    time.Time
}
