package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// pageEnvelope covers both the flat Spring Page serialization and the newer
// PagedModel form where counters live under "page".
type pageEnvelope struct {
	Content       json.RawMessage `json:"content"`
	TotalElements *int            `json:"totalElements"`
	TotalPages    *int            `json:"totalPages"`
	Number        *int            `json:"number"`
	Size          *int            `json:"size"`
	Page          *pageMetadata   `json:"page"`
}

type pageMetadata struct {
	TotalElements *int `json:"totalElements"`
	TotalPages    *int `json:"totalPages"`
	Number        *int `json:"number"`
	Size          *int `json:"size"`
}

// NormalizePage maps a listing response onto models.Page.
//
// A page envelope (an object with a "content" array and a "totalElements"
// counter) is mapped field for field. A bare JSON array is accepted as a
// degraded response: it becomes a single page with PageIndex 0, TotalPages 1,
// TotalItems = len(items) and the requested page size, flagged Partial.
// Anything else is rejected as an unexpected response.
func NormalizePage[T any](raw json.RawMessage, req models.PageRequest) (*models.Page[T], error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return bareSequence[T](nil, req), nil
	}

	switch body[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, unexpectedResponse(err, "decode item list")
		}
		return bareSequence(items, req), nil
	case '{':
		return fromEnvelope[T](body, req)
	default:
		return nil, unexpectedResponse(nil, "response is neither a page envelope nor a list")
	}
}

func bareSequence[T any](items []T, req models.PageRequest) *models.Page[T] {
	if items == nil {
		items = []T{}
	}
	size := req.PageSize
	if size <= 0 {
		size = len(items)
	}
	return &models.Page[T]{
		Items:      items,
		PageIndex:  0,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: 1,
		Partial:    true,
	}
}

func fromEnvelope[T any](body []byte, req models.PageRequest) (*models.Page[T], error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unexpectedResponse(err, "decode page envelope")
	}
	if env.Page != nil {
		env.TotalElements = firstInt(env.TotalElements, env.Page.TotalElements)
		env.TotalPages = firstInt(env.TotalPages, env.Page.TotalPages)
		env.Number = firstInt(env.Number, env.Page.Number)
		env.Size = firstInt(env.Size, env.Page.Size)
	}

	content := bytes.TrimSpace(env.Content)
	if len(content) == 0 || content[0] != '[' {
		return nil, unexpectedResponse(nil, "page envelope without a content list")
	}
	if env.TotalElements == nil {
		return nil, unexpectedResponse(nil, "page envelope without totalElements")
	}

	var items []T
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, unexpectedResponse(err, "decode page content")
	}
	if items == nil {
		items = []T{}
	}

	page := &models.Page[T]{
		Items:      items,
		PageIndex:  req.PageIndex,
		PageSize:   req.PageSize,
		TotalItems: *env.TotalElements,
	}
	if env.Number != nil {
		page.PageIndex = *env.Number
	}
	if env.Size != nil {
		page.PageSize = *env.Size
	}
	switch {
	case env.TotalPages != nil:
		page.TotalPages = *env.TotalPages
	case page.PageSize > 0:
		page.TotalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	default:
		page.TotalPages = 1
	}
	return page, nil
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func unexpectedResponse(err error, detail string) error {
	return appErrors.Wrap(err, appErrors.ErrUnexpectedResponseForm.Code, appErrors.ErrUnexpectedResponseForm.Status,
		fmt.Sprintf("%s: %s", appErrors.ErrUnexpectedResponseForm.Message, detail))
}
