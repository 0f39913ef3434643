package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OfficeHandler interface {
	ListAccessible(w http.ResponseWriter, r *http.Request)
	CheckLocation(w http.ResponseWriter, r *http.Request)

	// Admin operations
	Create(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &officeHandlerImpl{
		officeService: officeService,
	}
}

// ListAccessible implements OfficeHandler.
func (h *officeHandlerImpl) ListAccessible(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")

	result, err := h.officeService.AccessibleOffices(r.Context(), department)
	if err != nil {
		slog.Error("ListAccessible service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckLocation implements OfficeHandler.
func (h *officeHandlerImpl) CheckLocation(w http.ResponseWriter, r *http.Request) {
	var req office.CheckLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeService.CheckProximity(r.Context(), req)
	if err != nil {
		slog.Error("CheckLocation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements OfficeHandler.
func (h *officeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req office.CreateOfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create office decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office created successfully", result)
}

// ListAll implements OfficeHandler.
func (h *officeHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeService.ListAll(r.Context())
	if err != nil {
		slog.Error("ListAll offices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements OfficeHandler.
func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.officeService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements OfficeHandler.
func (h *officeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req office.UpdateOfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update office decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.officeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office updated successfully", result)
}

// Deactivate implements OfficeHandler.
func (h *officeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.officeService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office deactivated successfully", nil)
}
