package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error(), "title": "validation error"})
			return
		}

		var de *DuplicateEntryError
		if errors.As(err, &de) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": de.Error(), "title": "duplicate entry"})
			return
		}

		var me *MalformedRecordError
		if errors.As(err, &me) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": me.Error(), "title": "malformed record"})
			return
		}

		if errors.Is(err, ErrEmptyPopulation) {
			_ = c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error(), "title": "empty population"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
