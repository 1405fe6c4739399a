package dto

// BaseError is the common error body.
// Code: machine-oriented snake_case code
// Message: short human readable description
// Details: optional extra text
// Fields: per-field problems for validation errors
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// ValidationErrorResponse 400, Code: "validation_error"
type ValidationErrorResponse BaseError

// NotFoundErrorResponse 404, Code: "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409, Code: "conflict" or "insufficient_stock"
type ConflictErrorResponse BaseError

// ReferenceErrorResponse 422, Code: "reference_error"
type ReferenceErrorResponse BaseError

// StorageErrorResponse 503, Code: "storage_unavailable"
type StorageErrorResponse BaseError

// InternalErrorResponse 500, Code: "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewInsufficientStockError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "insufficient_stock", Message: msg})
}
func NewReferenceError(msg string) ReferenceErrorResponse {
	return ReferenceErrorResponse(BaseError{Code: "reference_error", Message: msg})
}
func NewStorageError() StorageErrorResponse {
	return StorageErrorResponse(BaseError{Code: "storage_unavailable", Message: "storage is unavailable, try again later"})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
