// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/consignly/consignly/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Storage failures are logged with a reference that is echoed to the client.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	kind := shared.KindOf(err)
	problem := ProblemDetail{
		Title:  kind,
		Kind:   kind,
		Detail: shared.UserSafeMessage(err),
	}
	var fieldErr *shared.FieldError
	if errors.As(err, &fieldErr) {
		problem.Field = fieldErr.Field
	}

	switch kind {
	case shared.KindValidationFailed, shared.KindInvalidUpdate:
		problem.Status = http.StatusBadRequest
	case shared.KindNotFound:
		problem.Status = http.StatusNotFound
	case shared.KindConflict:
		problem.Status = http.StatusConflict
	case shared.KindReferenceNotFound:
		problem.Status = http.StatusUnprocessableEntity
	default:
		problem.Status = http.StatusInternalServerError
		problem.Reference = uuid.NewString()
		if logger != nil {
			logger.Error("request failed", slog.String("reference", problem.Reference), slog.Any("error", err))
		}
	}
	JSON(w, problem.Status, problem)
}
