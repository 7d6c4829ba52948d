package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmaldonado/obrix/internal/auth"
	"github.com/rmaldonado/obrix/internal/user"
	"github.com/rmaldonado/obrix/internal/user/store"
)

type Handler struct {
	store  *store.Store
	secret string
	ttl    time.Duration
}

func NewHandler(store *store.Store, secret string, ttl time.Duration) *Handler {
	return &Handler{store: store, secret: secret, ttl: ttl}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

type loginResponse struct {
	Token   string     `json:"token"`
	Usuario string     `json:"usuario"`
	Nivel   user.Level `json:"nivel"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.store.GetByCredentials(r.Context(), req.Usuario, req.Clave)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	token, err := auth.GenerateToken(h.secret, u, h.ttl)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(loginResponse{
		Token:   token,
		Usuario: u.Usuario,
		Nivel:   u.Nivel,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
