package web

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// StatusFor maps an error code to the HTTP status the browser sees
func StatusFor(err error) int {
	switch dnderr.GetCode(err) {
	case dnderr.CodeInvalidArgument, dnderr.CodeValidation, dnderr.CodeOutOfBounds:
		return http.StatusBadRequest
	case dnderr.CodeTileBlocked, dnderr.CodeTileOccupied, dnderr.CodeAlreadyPlaced,
		dnderr.CodeAlreadyExists, dnderr.CodeBusy:
		return http.StatusConflict
	case dnderr.CodeNotFound:
		return http.StatusNotFound
	case dnderr.CodeUnknownParticipant, dnderr.CodeTransportFailure:
		return http.StatusBadGateway
	case dnderr.CodeTimeout:
		return http.StatusGatewayTimeout
	case dnderr.CodeCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(dnderr.GetCode(err)),
		Message: err.Error(),
		Meta:    dnderr.GetMeta(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware turns a handler panic into a 500 and logs the stack
func recoverMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
					Code:    string(dnderr.CodeInternal),
					Message: "an unexpected error occurred",
				}})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
