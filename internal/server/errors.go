package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case model.IsKind(err, model.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	case model.IsKind(err, model.ErrNotFound):
		return http.StatusNotFound
	case model.IsKind(err, model.ErrDeclined):
		return http.StatusConflict
	case model.IsKind(err, model.ErrNoSelection):
		return http.StatusBadRequest
	case model.IsKind(err, model.ErrCatalogNotReady):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, errorBody{Error: msg})
		}
		if werr != nil {
			e.Logger.Error(werr)
		}
	}
}

// badRequest reports a malformed request.
func badRequest(msg string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
}
