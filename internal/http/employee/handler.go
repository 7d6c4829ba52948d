package employee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/employee/store"
	"github.com/rmaldonado/obrix/internal/http/listquery"
)

var sortCols = map[string]string{
	"id":          "id",
	"firstName":   "first_name",
	"lastName":    "last_name",
	"status":      "status",
	"saldoActual": "saldo_actual",
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
	var req employee.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e := &employee.Employee{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		BirthDate:             req.BirthDate,
		Address:               req.Address,
		AddressProof:          req.AddressProof,
		CriminalRecord:        req.CriminalRecord,
		Email:                 req.Email,
		Phone:                 req.Phone,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Alias:                 req.Alias,
		CBU:                   req.CBU,
		Specialty:             req.Specialty,
		CoverageAreas:         req.CoverageAreas,
		Availability:          req.Availability,
		ShirtSize:             req.ShirtSize,
		ShoeSize:              req.ShoeSize,
		Status:                req.Status,
		StartDate:             req.StartDate,
		HourlyRate:            req.HourlyRate,
		SaldoActual:           req.SaldoActual,
	}
	if e.CoverageAreas == nil {
		e.CoverageAreas = []string{}
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
	q := listquery.Parse(r, sortCols, "lastName", false)

	employees, total, err := h.store.List(r.Context(), store.ListParams{
		Limit:  q.Limit,
		Offset: q.Offset,
		Sort:   q.Sort,
		Desc:   q.Desc,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if employees == nil {
		employees = []*employee.Employee{}
	}

	listquery.WriteTotal(w, total)
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(employees); err != nil {
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
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
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

	var req employee.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}

	if req.LastName != nil {
		e.LastName = *req.LastName
	}

	if req.BirthDate != nil {
		e.BirthDate = req.BirthDate
	}

	if req.Address != nil {
		e.Address = *req.Address
	}

	if req.AddressProof != nil {
		e.AddressProof = *req.AddressProof
	}

	if req.CriminalRecord != nil {
		e.CriminalRecord = *req.CriminalRecord
	}

	if req.Email != nil {
		e.Email = *req.Email
	}

	if req.Phone != nil {
		e.Phone = *req.Phone
	}

	if req.EmergencyContactName != nil {
		e.EmergencyContactName = *req.EmergencyContactName
	}

	if req.EmergencyContactPhone != nil {
		e.EmergencyContactPhone = *req.EmergencyContactPhone
	}

	if req.Alias != nil {
		e.Alias = *req.Alias
	}

	if req.CBU != nil {
		e.CBU = *req.CBU
	}

	if req.Specialty != nil {
		e.Specialty = *req.Specialty
	}

	if req.CoverageAreas != nil {
		e.CoverageAreas = *req.CoverageAreas
	}

	if req.Availability != nil {
		e.Availability = *req.Availability
	}

	if req.ShirtSize != nil {
		e.ShirtSize = *req.ShirtSize
	}

	if req.ShoeSize != nil {
		e.ShoeSize = *req.ShoeSize
	}

	if req.Status != nil {
		e.Status = *req.Status
	}

	if req.StartDate != nil {
		e.StartDate = req.StartDate
	}

	if req.HourlyRate != nil {
		e.HourlyRate = *req.HourlyRate
	}

	if req.SaldoActual != nil {
		e.SaldoActual = *req.SaldoActual
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
