package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

const (
	detailLoginRejected   = "Incorrect username or password"
	detailUnauthenticated = "Could not auth user"
	detailTokenExpired    = "token has been expired"
	detailUserExists      = "username already exists"
	detailNotFound        = "Not found!"
	detailValidation      = "validation error"
	detailInternal        = "internal error"
)

// challenge writes a 401 with the bearer challenge header.
func challenge(w http.ResponseWriter, detail string) {
	w.Header().Set(common.AuthenticateHeaderName, common.BearerScheme)
	writeDetail(w, http.StatusUnauthorized, detail)
}

// writeError maps service sentinels to responses. common.ErrorInternal and
// anything unrecognised are logged and answered with a bare 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		challenge(w, detailLoginRejected)
	case errors.Is(err, common.ErrorUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		challenge(w, detailUnauthenticated)
	case errors.Is(err, common.ErrTokenExpired):
		writeDetail(w, http.StatusForbidden, detailTokenExpired)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusConflict, detailUserExists)
	case errors.Is(err, common.ErrorValidation):
		writeDetail(w, http.StatusUnprocessableEntity, detailValidation)
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed",
		"error", err.Error(),
		"internal", errors.Is(err, common.ErrorInternal),
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeDetail(w, http.StatusInternalServerError, detailInternal)
}
