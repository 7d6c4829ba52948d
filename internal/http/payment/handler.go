package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/http/listquery"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/payment/store"
)

var sortCols = map[string]string{
	"id":     "id",
	"date":   "date",
	"amount": "amount",
	"type":   "type",
}

type Handler struct {
	store *store.Store
}

func NewHandler(store *store.Store) *Handler {
	return &Handler{store: store}
}

// Routes omits PATCH. Payments are immutable once registered; correcting one
// means deleting it and registering a replacement.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req payment.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, payment.ErrZeroAmount.Error(), http.StatusBadRequest)
		return
	}

	p := &payment.Payment{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Date:       req.Date,
		Type:       req.Type,
		Amount:     req.Amount,
		Notes:      req.Notes,
	}

	if err := h.store.Create(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := listquery.Parse(r, sortCols, "date", true)

	params := store.ListParams{
		Limit:  q.Limit,
		Offset: q.Offset,
		Sort:   q.Sort,
		Desc:   q.Desc,
	}

	if s := r.URL.Query().Get("employeeId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid employeeId", http.StatusBadRequest)
			return
		}

		params.EmployeeID = new(id)
	}

	if s := r.URL.Query().Get("projectId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid projectId", http.StatusBadRequest)
			return
		}

		params.ProjectID = new(id)
	}

	payments, total, err := h.store.List(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if payments == nil {
		payments = []*payment.Payment{}
	}

	listquery.WriteTotal(w, total)
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
