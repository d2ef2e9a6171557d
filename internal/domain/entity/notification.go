package entity

import "time"

// Notification aviso persistido para un usuario. La entrega (push/email) es externa.
type Notification struct {
	ID        string
	CompanyID string
	UserID    string
	Title     string
	Message   string
	Read      bool
	URL       string
	CreatedAt time.Time
}
