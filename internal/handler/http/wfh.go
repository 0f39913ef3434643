package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/wfh"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WFHHandler interface {
	Eligibility(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)

	// Admin operations
	Review(w http.ResponseWriter, r *http.Request)
}

type wfhHandlerImpl struct {
	wfhService wfh.WFHService
}

func NewWFHHandler(wfhService wfh.WFHService) WFHHandler {
	return &wfhHandlerImpl{
		wfhService: wfhService,
	}
}

// Eligibility implements WFHHandler.
func (h *wfhHandlerImpl) Eligibility(w http.ResponseWriter, r *http.Request) {
	var year, month int
	var err error

	query := r.URL.Query()
	if v := query.Get("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter", nil)
			return
		}
	}
	if v := query.Get("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid month parameter", nil)
			return
		}
	}

	result, err := h.wfhService.CheckEligibility(r.Context(), year, month)
	if err != nil {
		slog.Error("Eligibility service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRequest implements WFHHandler.
func (h *wfhHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req wfh.CreateWFHRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wfhService.CreateRequest(r.Context(), req)
	if err != nil {
		slog.Error("CreateRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "WFH request created successfully", result)
}

// ListMyRequests implements WFHHandler.
func (h *wfhHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.wfhService.ListMyRequests(r.Context())
	if err != nil {
		slog.Error("ListMyRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Review implements WFHHandler.
func (h *wfhHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req wfh.ReviewWFHRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.wfhService.Review(r.Context(), id, req)
	if err != nil {
		slog.Error("Review service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH request reviewed", result)
}
