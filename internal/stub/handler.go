package stub

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/internal/service"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
	"github.com/noah-isme/printshop-console/pkg/response"
)

// ResourceHandler serves the REST routes of one record type.
type ResourceHandler[T any, P any] struct {
	spec     resourceSpec[T, P]
	table    *Table[T]
	validate *validator.Validate
	logger   *zap.Logger
}

func newResourceHandler[T any, P any](spec resourceSpec[T, P], table *Table[T], validate *validator.Validate, logger *zap.Logger) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{spec: spec, table: table, validate: validate, logger: logger.With(zap.String("resource", spec.name))}
}

// List answers with a page envelope, or with every match as a bare array for
// resources that do not page.
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	q := parseListQuery(c.Request.URL.Query())
	if h.spec.bare {
		q.page = listAll(h.table.Len())
		response.JSON(c, http.StatusOK, apply(h.table.All(), q, h.spec.matchers, h.spec.comparators).Items)
		return
	}
	response.Page(c, apply(h.table.All(), q, h.spec.matchers, h.spec.comparators))
}

// Get answers one record.
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	record, found := h.table.Get(id)
	if !found {
		response.Error(c, h.notFound(id))
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Create validates and stores a new record.
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	payload, ok := h.bind(c, 0)
	if !ok {
		return
	}
	record := h.table.Insert(h.spec.build(payload, nil))
	h.logger.Info("record created")
	response.Created(c, record)
}

// Update validates and replaces a stored record.
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	prev, found := h.table.Get(id)
	if !found {
		response.Error(c, h.notFound(id))
		return
	}
	payload, ok := h.bind(c, id)
	if !ok {
		return
	}
	record, found := h.table.Replace(id, h.spec.build(payload, &prev))
	if !found {
		response.Error(c, h.notFound(id))
		return
	}
	h.logger.Info("record updated", zap.Int64("id", id))
	response.JSON(c, http.StatusOK, record)
}

// Delete removes a stored record.
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if !h.table.Delete(id) {
		response.Error(c, h.notFound(id))
		return
	}
	h.logger.Info("record deleted", zap.Int64("id", id))
	response.NoContent(c)
}

func (h *ResourceHandler[T, P]) bind(c *gin.Context, id int64) (P, bool) {
	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return payload, false
	}
	if err := h.validate.Struct(payload); err != nil {
		response.Error(c, appErrors.ServerValidation(http.StatusBadRequest, "invalid payload", service.FieldErrors(err)))
		return payload, false
	}
	if h.spec.check != nil {
		if fields := h.spec.check(h.table.All(), id, payload); len(fields) > 0 {
			response.Error(c, appErrors.ServerValidation(http.StatusBadRequest, "conflicting values", fields))
			return payload, false
		}
	}
	return payload, true
}

func (h *ResourceHandler[T, P]) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %q not found", h.spec.name, c.Param("id"))))
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler[T, P]) notFound(id int64) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %d not found", h.spec.name, id))
}

func listAll(n int) models.PageRequest {
	if n == 0 {
		n = 1
	}
	return models.PageRequest{PageIndex: 0, PageSize: n}
}
