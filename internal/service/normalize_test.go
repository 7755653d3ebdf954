package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

func TestNormalizePageEnvelopeIsIdentity(t *testing.T) {
	raw := json.RawMessage(`{"content":[{"id":21,"name":"a"}],"totalElements":57,"totalPages":3,"number":1,"size":20}`)

	page, err := NormalizePage[row](raw, models.PageRequest{PageIndex: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 57, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Partial)
	assert.Equal(t, []row{{ID: 21, Name: "a"}}, page.Items)
}

func TestNormalizePageNestedMetadata(t *testing.T) {
	raw := json.RawMessage(`{"content":[],"page":{"size":20,"number":2,"totalElements":57,"totalPages":3}}`)

	page, err := NormalizePage[row](raw, models.PageRequest{PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageIndex)
	assert.Equal(t, 57, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestNormalizePageDerivesTotalPages(t *testing.T) {
	raw := json.RawMessage(`{"content":[],"totalElements":41}`)

	page, err := NormalizePage[row](raw, models.PageRequest{PageIndex: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageIndex)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNormalizePageBareArray(t *testing.T) {
	raw := json.RawMessage(`[{"id":1},{"id":2},{"id":3},{"id":4}]`)

	page, err := NormalizePage[row](raw, models.PageRequest{PageIndex: 3, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, page.PageIndex)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.Partial)

	page, err = NormalizePage[row](raw, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, page.PageSize)
}

func TestNormalizePageEmptyBody(t *testing.T) {
	for _, body := range []string{"", "null", "  "} {
		page, err := NormalizePage[row](json.RawMessage(body), models.PageRequest{PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.Partial)
	}
}

func TestNormalizePageRejectsUnexpectedShapes(t *testing.T) {
	cases := map[string]string{
		"scalar":             `42`,
		"missing content":    `{"totalElements":3}`,
		"content not a list": `{"content":{"id":1},"totalElements":1}`,
		"missing total":      `{"content":[]}`,
		"broken items":       `[{"id":"one"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizePage[row](json.RawMessage(body), models.PageRequest{PageSize: 20})
			require.Error(t, err)
			assert.ErrorIs(t, err, appErrors.ErrUnexpectedResponseForm)
		})
	}
}
