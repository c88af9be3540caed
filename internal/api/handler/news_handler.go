package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/newsdesk/news-api/internal/api/middleware"
	"github.com/newsdesk/news-api/internal/domain"
	"github.com/newsdesk/news-api/internal/service"
)

// NewsHandler handles the news CRUD endpoints.
type NewsHandler struct {
	svc    *service.NewsService
	logger *zap.Logger
}

func NewNewsHandler(svc *service.NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{svc: svc, logger: logger}
}

// Create handles POST /api/news
//
// @Summary     Create a news item
// @Tags        news
// @Accept      json
// @Produce     json
// @Param       body  body      domain.CreateNewsRequest  true  "News payload"
// @Success     201   {object}  domain.News
// @Failure     400   {object}  map[string]string
// @Router      /api/news [post]
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNewsRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create news failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

// List handles GET /api/news
//
// @Summary  List news with filtering and pagination
// @Tags     news
// @Produce  json
// @Param    page         query     int     false  "Page number (default 1)"
// @Param    limit        query     int     false  "Items per page (default 10)"
// @Param    title        query     string  false  "Title substring filter"
// @Param    description  query     string  false  "Description substring filter"
// @Success  200          {object}  domain.PaginatedNews
// @Failure  400          {object}  map[string]string
// @Router   /api/news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		mapError(w, err)
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list news failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/news/{id}
//
// @Summary  Get a news item by ID
// @Tags     news
// @Produce  json
// @Param    id   path      string  true  "News UUID"
// @Success  200  {object}  domain.News
// @Failure  404  {object}  map[string]string
// @Router   /api/news/{id} [get]
func (h *NewsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// Update handles PATCH /api/news/{id}
//
// @Summary  Partially update a news item
// @Tags     news
// @Accept   json
// @Produce  json
// @Param    id    path      string                    true  "News UUID"
// @Param    body  body      domain.UpdateNewsRequest  true  "Fields to update"
// @Success  200   {object}  domain.News
// @Failure  400   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/news/{id} [patch]
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateNewsRequest
	// An empty body is a valid no-op partial update; it still refreshes
	// updated_at like any other PATCH.
	if err := decodeStrict(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	n, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// Delete handles DELETE /api/news/{id}
//
// @Summary  Delete a news item
// @Tags     news
// @Param    id   path  string  true  "News UUID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/news/{id} [delete]
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeStrict decodes a JSON body rejecting unknown fields, so a payload
// with fields outside the declared contract fails with 400.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseListFilter reads pagination and filter query parameters. Absent page
// and limit fall back to their defaults; supplied values must be integers of
// at least 1 or the request is rejected.
func parseListFilter(r *http.Request) (domain.ListFilter, error) {
	q := r.URL.Query()
	filter := domain.ListFilter{Page: 1, Limit: 10}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			return filter, domain.ErrInvalidPage
		}
		filter.Page = p
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 1 {
			return filter, domain.ErrInvalidLimit
		}
		filter.Limit = l
	}
	filter.Title = q.Get("title")
	filter.Description = q.Get("description")
	return filter, nil
}
