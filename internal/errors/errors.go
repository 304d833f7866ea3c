package errors

import "fmt"

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeDataset    ErrorType = "DATASET_ERROR"
	ErrorTypeExternal   ErrorType = "EXTERNAL_SOURCE_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`

	err error
}

func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Error constructors
func NewValidationError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewDatasetError reports a dataset that could not be read, decoded or bound
// to product records.
func NewDatasetError(source string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeDataset,
		Message: fmt.Sprintf("Error loading dataset (%s)", source),
		Details: err.Error(),
		err:     err,
	}
}

func NewExternalError(service string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeExternal,
		Message: fmt.Sprintf("Error from external source (%s)", service),
		Details: err.Error(),
		err:     err,
	}
}

func NewInternalError(err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInternal,
		Message: "Internal server error",
		Details: err.Error(),
		err:     err,
	}
}
