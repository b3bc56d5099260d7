package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"eventdesk/internal/dto"
)

// NewErrorHandler returns the central echo error handler. Handlers attach a
// dto.APIError to *echo.HTTPError for typed client errors; everything else
// is reported as a generic server error, with diagnostic detail included
// only outside production.
func NewErrorHandler(env string) echo.HTTPErrorHandler {
	production := env == "production"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := dto.APIError{Code: "INTERNAL_SERVER_ERROR", Message: "internal server error"}

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			switch m := he.Message.(type) {
			case dto.APIError:
				body = m
			case string:
				body = dto.APIError{Code: codeForStatus(status), Message: m}
			}
		}

		if status >= http.StatusInternalServerError && !production {
			body.Details = err.Error()
		}

		_ = c.JSON(status, body)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
