package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes a success envelope around data. cached marks a
// cache-served payload.
func SuccessResponse(c echo.Context, cached bool, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Cached:    cached,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
}

// ErrorResponse writes an error envelope with the given status.
func ErrorResponse(c echo.Context, status int, errBody interface{}) error {
	return c.JSON(status, APIResponse{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error:     errBody,
	})
}

// BadRequestResponse writes a 400 error with validation details.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return ErrorResponse(c, http.StatusBadRequest, details)
}

// NotFoundResponse writes a 404 error.
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, map[string]string{
		"code":    "ERR_NOT_FOUND",
		"message": message,
	})
}

// InternalServerErrorResponse writes a generic 500. The underlying cause is
// never surfaced to the client.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, map[string]string{
		"code":    "ERR_INTERNAL",
		"message": "Something went wrong",
	})
}

// AppErrorResponse writes an application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr)
	}
	return InternalServerErrorResponse(c)
}
