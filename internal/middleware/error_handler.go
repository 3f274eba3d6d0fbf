package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motoMatch/pkg/logger"
)

// ErrorHandler is the echo fallback for errors no handler translated.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "path", c.Path(), "error", err)
	}

	if jsonErr := c.JSON(code, map[string]string{"message": message}); jsonErr != nil {
		logger.Error("Failed to write error response", "error", jsonErr)
	}
}
