// Package web serves the browser API: session state, character
// creation and placement, entity spawning, the next-turn trigger and a
// websocket feed of battle events.
package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/session"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/turn"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// HandlerConfig holds the dependencies of the HTTP API
type HandlerConfig struct {
	Session session.Service // Required
	Turn    turn.Service    // Required
	Feed    *Feed           // Optional, /api/feed is not served without it
	Logger  *zap.Logger     // Optional
}

// Handler serves the battlemap API
type Handler struct {
	session session.Service
	turn    turn.Service
	feed    *Feed
	logger  *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Session == nil {
		panic("session service is required")
	}
	if cfg.Turn == nil {
		panic("turn service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		session: cfg.Session,
		turn:    cfg.Turn,
		feed:    cfg.Feed,
		logger:  logger,
	}
}

// Routes returns the API mux wrapped with panic recovery and CORS
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", h.handleState)
	mux.HandleFunc("GET /api/state/raw", h.handleStateRaw)
	mux.HandleFunc("GET /api/catalog", h.handleCatalog)
	mux.HandleFunc("POST /api/characters", h.handleCreateCharacter)
	mux.HandleFunc("POST /api/characters/{id}/place", h.handlePlaceCharacter)
	mux.HandleFunc("DELETE /api/characters/{id}", h.handleRemoveCharacter)
	mux.HandleFunc("POST /api/entities", h.handleSpawnEntity)
	mux.HandleFunc("POST /api/game/turn", h.handleNextTurn)
	mux.HandleFunc("GET /api/log", h.handleLog)
	mux.HandleFunc("GET /health", h.handleHealth)
	if h.feed != nil {
		mux.Handle("GET /api/feed", h.feed)
	}

	return recoverMiddleware(h.logger, enableCORS(mux))
}

type placeRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type spawnRequest struct {
	Template string `json:"template"`
	ID       string `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type catalogResponse struct {
	Weapons []entities.Weapon `json:"weapons"`
	Spells  []entities.Spell  `json:"spells"`
	Icons   []string          `json:"icons"`
}

type stateResponse struct {
	*session.Snapshot
	TurnState turn.State `json:"turn_state"`
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse{
		Snapshot:  h.session.Snapshot(r.Context()),
		TurnState: h.turn.State(),
	})
}

// handleStateRaw returns exactly what the resolver would receive
func (h *Handler) handleStateRaw(w http.ResponseWriter, r *http.Request) {
	body, err := codec.Marshal(h.session.Encode(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Weapons: entities.Weapons(),
		Spells:  entities.Spells(),
		Icons:   entities.CharacterIcons,
	})
}

func (h *Handler) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var spec entities.CharacterSpec
	if err := decodeBody(w, r, &spec); err != nil {
		h.writeError(w, err)
		return
	}

	char, err := h.session.CreateCharacter(r.Context(), spec)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, char)
}

func (h *Handler) handlePlaceCharacter(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	char, err := h.session.PlaceCharacter(r.Context(), r.PathValue("id"), req.X, req.Y)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, char)
}

// handleRemoveCharacter is idempotent: removing an absent id succeeds
func (h *Handler) handleRemoveCharacter(w http.ResponseWriter, r *http.Request) {
	h.session.RemoveCharacter(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSpawnEntity(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Template == "" {
		h.writeError(w, dnderr.InvalidArgument("template is required"))
		return
	}

	entity, err := h.session.SpawnTemplate(r.Context(), req.Template, req.ID, req.X, req.Y)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entity)
}

func (h *Handler) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	result, err := h.turn.RequestNextTurn(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Log(r.Context()))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid request body")
	}
	return nil
}
