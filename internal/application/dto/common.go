package dto

// ErrorResponse cuerpo de error HTTP.
// Code es estable y legible por máquina; Kind indica la familia del error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}
