package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/roach88/giftcycle/internal/domain"
)

// Response is the JSON envelope for every endpoint.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse is the error member of Response.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code domain.Code) int {
	switch code {
	case domain.CodeUnauthorized:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeWrongState, domain.CodeDuplicate:
		return http.StatusConflict
	case domain.CodeTooFewParticipants, domain.CodeSelfExclusion, domain.CodeInfeasible:
		return http.StatusUnprocessableEntity
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Status: "ok", Data: data})
}

// writeError renders err. Domain errors keep their code and message; anything
// else is an internal error whose text is logged, not returned.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Status: "error",
			Error:  &ErrorResponse{Code: "INTERNAL", Message: "internal error"},
		})
		return
	}
	if de.Code == domain.CodeCommitFailed {
		logger.Error("commit failed", "group", de.GroupID, "error", de)
	}
	writeJSON(w, StatusFor(de.Code), Response{
		Status: "error",
		Error:  &ErrorResponse{Code: string(de.Code), Message: de.Message, Details: de.Details},
	})
}
