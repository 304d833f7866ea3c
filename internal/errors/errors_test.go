package errors

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatasetError_WrapsCause(t *testing.T) {
	err := NewDatasetError("brands_data.csv", os.ErrNotExist)

	assert.Equal(t, ErrorTypeDataset, err.Type)
	assert.Equal(t, "Error loading dataset (brands_data.csv)", err.Message)
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestNewValidationError_HasNoCause(t *testing.T) {
	err := NewValidationError("bad keyword")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "bad keyword", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAsAPIError(t *testing.T) {
	var wrapped error = NewExternalError("s3", stderrors.New("access denied"))

	var apiErr *APIError
	assert.True(t, stderrors.As(wrapped, &apiErr))
	assert.Equal(t, ErrorTypeExternal, apiErr.Type)
	assert.Equal(t, "access denied", apiErr.Details)
}
