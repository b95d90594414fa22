package dish

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skytake/service/internal/response"
)

// Handler holds HTTP handlers for dish admin endpoints.
type Handler struct {
	svc *Service
	log *zap.Logger
}

// NewHandler creates a new dish Handler.
func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes mounts the dish endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/page", h.Page)
	r.Delete("/", h.DeleteBatch)
	r.Get("/{id}", h.GetByID)
}

// Create godoc
//
//	@Summary		Create dish
//	@Description	Insert a dish together with its flavor options.
//	@Tags			dish
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DishDTO	true	"Dish with flavors"
//	@Success		200		{object}	response.Envelope{data=Dish}
//	@Failure		400		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/admin/dish [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto DishDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	d, err := h.svc.InsertWithFlavors(r.Context(), dto)
	if err != nil {
		h.fail(w, "create dish", err)
		return
	}

	h.log.Info("dish created", zap.Int64("id", d.ID), zap.Int("flavors", len(dto.Flavors)))
	response.OK(w, d)
}

// Page godoc
//
//	@Summary		Page dishes
//	@Description	Paginated dish listing filtered by name, category and status.
//	@Tags			dish
//	@Produce		json
//	@Param			page		query		int		false	"Page number (from 1)"
//	@Param			pageSize	query		int		false	"Page size (max 100)"
//	@Param			name		query		string	false	"Name contains"
//	@Param			categoryId	query		int		false	"Category id"
//	@Param			status		query		int		false	"0 disabled, 1 on sale"
//	@Success		200			{object}	response.Envelope{data=PageResult}
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/admin/dish/page [get]
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := parsePageQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.svc.PageQuery(r.Context(), q)
	if err != nil {
		h.fail(w, "page dishes", err)
		return
	}

	response.OK(w, result)
}

// DeleteBatch godoc
//
//	@Summary		Delete dishes
//	@Description	Delete dishes and their flavors. Fails without deleting anything if one of them is on sale.
//	@Tags			dish
//	@Produce		json
//	@Param			ids	query		string	true	"Comma separated ids"	example(1,2,3)
//	@Success		200	{object}	response.Envelope
//	@Failure		400	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/admin/dish [delete]
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.DeleteBatch(r.Context(), ids); err != nil {
		h.fail(w, "delete dishes", err)
		return
	}

	h.log.Info("dishes deleted", zap.Int64s("ids", ids))
	response.OK(w, nil)
}

// GetByID godoc
//
//	@Summary		Get dish
//	@Description	Fetch a dish with its flavors.
//	@Tags			dish
//	@Produce		json
//	@Param			id	path		int	true	"Dish id"
//	@Success		200	{object}	response.Envelope{data=DishVO}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/admin/dish/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid dish id")
		return
	}

	vo, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get dish", err)
		return
	}

	response.OK(w, vo)
}

// fail maps service errors onto responses; unexpected ones are logged and hidden.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrOnSale):
		response.BadRequest(w, ErrOnSale.Error())
	case errors.Is(err, ErrDuplicateName):
		response.Error(w, http.StatusConflict, ErrDuplicateName.Error())
	case h.svc.IsNotFound(err):
		response.NotFound(w, ErrNotFound.Error())
	default:
		h.log.Error(op+" failed", zap.Error(err))
		response.InternalError(w)
	}
}

func parsePageQuery(r *http.Request) (PageQuery, error) {
	values := r.URL.Query()
	q := PageQuery{Name: strings.TrimSpace(values.Get("name"))}

	var err error
	if v := values.Get("page"); v != "" {
		if q.Page, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("page must be an integer")
		}
	}
	if v := values.Get("pageSize"); v != "" {
		if q.PageSize, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("pageSize must be an integer")
		}
	}
	if v := values.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, fmt.Errorf("categoryId must be an integer")
		}
		q.CategoryID = &id
	}
	if v := values.Get("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil || (status != StatusDisabled && status != StatusOnSale) {
			return q, fmt.Errorf("status must be 0 or 1")
		}
		q.Status = &status
	}
	return q, nil
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid dish id %q", part)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids is required")
	}
	return ids, nil
}
