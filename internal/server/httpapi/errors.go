package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bailbridge/internal/common"
)

// Error is the JSON body of every failed request.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_error"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"
)

// Fixed client-facing messages. Internal reasons never reach the body.
const (
	msgAuthenticationFailed = "authentication failed"
	msgUnauthenticated      = "unauthenticated"
	msgForbidden            = "forbidden"
	msgInternal             = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{Status: status, Code: code, Message: message})
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, msgUnauthenticated)
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, msgInternal)
}

// statusFor maps err onto a status code, an error code and a safe message.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, ErrCodeUnauthorized, msgAuthenticationFailed
	case common.IsTokenRejection(err):
		return http.StatusUnauthorized, ErrCodeUnauthorized, msgUnauthenticated
	case errors.Is(err, common.ErrInvalidRole):
		return http.StatusBadRequest, ErrCodeBadRequest, common.ErrInvalidRole.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, ErrCodeValidation, err.Error()
	case errors.Is(err, common.ErrDuplicateIdentity):
		return http.StatusConflict, ErrCodeConflict, common.ErrDuplicateIdentity.Error()
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden, msgForbidden
	default:
		return http.StatusInternalServerError, ErrCodeInternal, msgInternal
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code, msg := statusFor(err)
	if code == ErrCodeUnauthorized && msg == msgUnauthenticated {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
	}
	writeError(w, status, code, msg)
}
