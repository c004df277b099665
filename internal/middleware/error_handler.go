package middleware

import (
	"net/http"
	"pickwise/pkg/logger"

	jsonres "pickwise/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler. Anything a handler did not
// translate itself becomes a uniform JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
