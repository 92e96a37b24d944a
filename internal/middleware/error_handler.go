package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Eursukkul/devevent/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"message": ...}. Server errors carrying an internal cause also
// get an "error" field with the cause's text.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := dto.ErrorResponse{Message: http.StatusText(code), Error: err.Error()}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			resp.Error = ""
			if m, ok := he.Message.(string); ok {
				resp.Message = m
			} else {
				resp.Message = http.StatusText(code)
			}
			if he.Internal != nil && code >= http.StatusInternalServerError {
				resp.Error = he.Internal.Error()
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", code,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}
