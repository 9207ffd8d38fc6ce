// Package errors defines the domain error taxonomy shared across services.
package errors

// DomainError is a coded business-rule error that handlers map onto the
// JSON envelope.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
