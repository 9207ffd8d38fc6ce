package errors

var (
	ErrUsernameTaken = &DomainError{
		Code:    "USERNAME_TAKEN",
		Message: "username already taken",
	}
)
