package model

// Envelope is the uniform response of every credential operation.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data"`
	Errors  []string `json:"errors"`
	Code    string   `json:"code,omitempty"`
}

// Empty is the payload of operations that return no data.
type Empty struct{}
