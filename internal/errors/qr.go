package errors

var (
	ErrMalformedPayload = &DomainError{
		Code:    "MALFORMED_PAYLOAD",
		Message: "scanned payload is not valid JSON",
	}
	ErrMissingField = &DomainError{
		Code:    "MISSING_FIELD",
		Message: "scanned payload has no number field",
	}
	ErrQRCodeNotFound = &DomainError{
		Code:    "QRCODE_NOT_FOUND",
		Message: "no active QR code with that number",
	}
	ErrInvalidRegion = &DomainError{
		Code:    "INVALID_REGION",
		Message: "unknown region code",
	}
	ErrInvalidProduct = &DomainError{
		Code:    "INVALID_PRODUCT",
		Message: "unknown product description",
	}
)
