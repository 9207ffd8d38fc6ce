package errors

var (
	ErrInsufficientQuota = &DomainError{
		Code:    "INSUFFICIENT_QUOTA",
		Message: "not enough tickets remaining",
	}
	ErrMemberNotFound = &DomainError{
		Code:    "MEMBER_NOT_FOUND",
		Message: "member account not found",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
)
