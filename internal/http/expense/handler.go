package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/expense"
	"github.com/rmaldonado/obrix/internal/expense/store"
	"github.com/rmaldonado/obrix/internal/http/listquery"
)

var sortCols = map[string]string{
	"id":       "id",
	"date":     "date",
	"amount":   "amount",
	"category": "category",
	"concept":  "concept",
}

type Handler struct {
	store *store.Store
}

func NewHandler(store *store.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e := &expense.Expense{
		ProjectID:  req.ProjectID,
		Concept:    req.Concept,
		Category:   req.Category,
		Amount:     req.Amount,
		Date:       req.Date,
		Supplier:   req.Supplier,
		InvoiceRef: req.InvoiceRef,
	}

	if err := h.store.Create(r.Context(), e); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(e); err != nil {
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

	if s := r.URL.Query().Get("projectId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid projectId", http.StatusBadRequest)
			return
		}

		params.ProjectID = new(id)
	}

	expenses, total, err := h.store.List(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if expenses == nil {
		expenses = []*expense.Expense{}
	}

	listquery.WriteTotal(w, total)
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(expenses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(e); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req expense.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Concept != nil {
		e.Concept = *req.Concept
	}

	if req.Category != nil {
		e.Category = *req.Category
	}

	if req.Amount != nil {
		e.Amount = *req.Amount
	}

	if req.Date != nil {
		e.Date = *req.Date
	}

	if req.Supplier != nil {
		e.Supplier = *req.Supplier
	}

	if req.InvoiceRef != nil {
		e.InvoiceRef = *req.InvoiceRef
	}

	if err := h.store.Update(r.Context(), e); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(e); err != nil {
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
