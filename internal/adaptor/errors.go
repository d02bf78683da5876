package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"seat-reservation/internal/data/entity"
	"seat-reservation/internal/data/repository"
	"seat-reservation/internal/usecase"
	"seat-reservation/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps domain errors onto HTTP responses:
// unknown ids to 404, ownership violations to 403, every domain
// rejection to 400, anything unrecognized to 500. The hold-expired
// case keeps its distinct message so clients know to rebook rather
// than retry payment.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	msg := err.Error()

	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You don't have permission to access this booking")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, entity.ErrHoldExpired),
		errors.Is(err, entity.ErrSeatUnavailable),
		errors.Is(err, entity.ErrSingleSeatGap),
		errors.Is(err, entity.ErrInvalidState):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "already taken"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
