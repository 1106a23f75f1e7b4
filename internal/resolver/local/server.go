package local

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/clients/resolver"
	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
)

const maxRequestBytes = 4 << 20

// Handler serves the resolver over HTTP at resolver.DefaultPath
func Handler(r *Resolver, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+resolver.DefaultPath, func(w http.ResponseWriter, req *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBytes))
		if err != nil {
			http.Error(w, "failed to read request", http.StatusBadRequest)
			return
		}
		payload, err := codec.Unmarshal(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := r.Resolve(req.Context(), payload)
		if err != nil {
			logger.Warn("local resolution failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		body, err := codec.MarshalResponse(*resp)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	return mux
}
