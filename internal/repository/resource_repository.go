package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// Backend routes.
const (
	DieCutsPath      = "/api/die-cuts"
	RawMaterialsPath = "/api/raw-materials"
	InksPath         = "/api/inks"
)

// ResourceRepository exposes list/get/create/update/delete for one record
// type over REST.
type ResourceRepository[T any, P any] struct {
	client   *Client
	basePath string
	listPath string
}

// NewResourceRepository builds a repository rooted at basePath. listPath
// defaults to basePath.
func NewResourceRepository[T any, P any](client *Client, basePath, listPath string) *ResourceRepository[T, P] {
	if listPath == "" {
		listPath = basePath
	}
	return &ResourceRepository[T, P]{client: client, basePath: basePath, listPath: listPath}
}

// NewDieCutRepository serves /api/die-cuts.
func NewDieCutRepository(client *Client) *ResourceRepository[models.DieCut, dto.DieCutPayload] {
	return NewResourceRepository[models.DieCut, dto.DieCutPayload](client, DieCutsPath, "")
}

// NewRawMaterialRepository serves /api/raw-materials; listing goes through
// its search endpoint.
func NewRawMaterialRepository(client *Client) *ResourceRepository[models.RawMaterial, dto.RawMaterialPayload] {
	return NewResourceRepository[models.RawMaterial, dto.RawMaterialPayload](client, RawMaterialsPath, RawMaterialsPath+"/search")
}

// NewInkRepository serves /api/inks.
func NewInkRepository(client *Client) *ResourceRepository[models.Ink, dto.InkPayload] {
	return NewResourceRepository[models.Ink, dto.InkPayload](client, InksPath, "")
}

// List returns the raw listing body, a page envelope or a bare array.
func (r *ResourceRepository[T, P]) List(ctx context.Context, query models.Query) (json.RawMessage, error) {
	return r.client.Do(ctx, http.MethodGet, r.listPath, query.Values(), nil)
}

// Get fetches one record by id.
func (r *ResourceRepository[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	raw, err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

// Create posts a new record.
func (r *ResourceRepository[T, P]) Create(ctx context.Context, payload P) (*T, error) {
	raw, err := r.client.Do(ctx, http.MethodPost, r.basePath, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

// Update replaces the record id.
func (r *ResourceRepository[T, P]) Update(ctx context.Context, id int64, payload P) (*T, error) {
	raw, err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

// Delete removes the record id.
func (r *ResourceRepository[T, P]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	return err
}

func (r *ResourceRepository[T, P]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.basePath, id)
}

func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnexpectedResponseForm.Code, appErrors.ErrUnexpectedResponseForm.Status,
			"decode record: "+appErrors.ErrUnexpectedResponseForm.Message)
	}
	return &record, nil
}
