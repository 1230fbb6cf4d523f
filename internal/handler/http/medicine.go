package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medikart/PharmacyGo/internal/service"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
	"github.com/medikart/PharmacyGo/pkg/httputil"
)

// MedicineHandler serves the legacy /medicines resource. Its responses are
// bare documents and `{"message": ...}` errors rather than the `{data,error}`
// envelope the newer endpoints use; clients of the old surface depend on that
// shape.
type MedicineHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewMedicineHandler creates a new medicine HTTP handler.
func NewMedicineHandler(svc *service.CatalogService, logger *slog.Logger) *MedicineHandler {
	return &MedicineHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /medicines
func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, medicines)
}

// Get handles GET /medicines/{id}
func (h *MedicineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	medicine, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, medicine)
}

// Create handles POST /medicines
func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input service.MedicineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// Replace handles PUT /medicines/{id}
func (h *MedicineHandler) Replace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	var input service.MedicineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	replaced, err := h.service.Replace(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, replaced)
}

// Delete handles DELETE /medicines/{id}
func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Medicine deleted")
}

// writeError maps service errors onto the legacy `{"message": ...}` shape.
func (h *MedicineHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		httputil.WriteMessage(w, http.StatusNotFound, "Medicine not found")
	case errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError:
		httputil.WriteMessage(w, appErr.Status, appErr.Message)
	default:
		h.logger.ErrorContext(r.Context(), "medicine handler error",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
