package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// PageBody is the Spring style page envelope.
type PageBody[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a record or list without any wrapping.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// Page sends one page inside the page envelope.
func Page[T any](c *gin.Context, page *models.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	JSON(c, http.StatusOK, PageBody[T]{
		Content:       items,
		TotalElements: page.TotalItems,
		TotalPages:    page.TotalPages,
		Number:        page.PageIndex,
		Size:          page.PageSize,
		First:         !page.HasPrev(),
		Last:          !page.HasNext(),
	})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error converts err to the backend error body.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.AbortWithStatusJSON(appErr.Status, dto.ErrorBody{
		Status:      appErr.Status,
		Code:        appErr.Code,
		Message:     appErr.Message,
		FieldErrors: appErr.Fields,
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
