package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SirClappington/dj-product-explorer/internal/errors"
)

func statusFor(apiErr *errors.APIError) int {
	switch apiErr.Type {
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeExternal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err as JSON, or as an HTML page when html is set.
// Outside debug mode internal details are withheld.
func handleError(c *gin.Context, err error, html bool) {
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		apiErr = errors.NewInternalError(err)
	}

	status := statusFor(apiErr)
	body := *apiErr
	if !gin.IsDebugging() && status == http.StatusInternalServerError {
		body.Details = nil
	}

	_ = c.Error(err)
	defer c.Abort()
	if html {
		c.HTML(status, "error.tmpl", gin.H{
			"Status": status,
			"Error":  body,
		})
		return
	}
	c.JSON(status, body)
}
