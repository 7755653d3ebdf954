package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/internal/service"
	"github.com/noah-isme/printshop-console/pkg/response"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := NewServer(Options{Metrics: service.NewMetricsService()})
	s.Seed(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	return s, s.Router()
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListDieCutsPageEnvelope(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/api/die-cuts?page=1&size=20&sort=dieNumber,desc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.PageBody[models.DieCut]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 45, body.TotalElements)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 1, body.Number)
	assert.Equal(t, 20, body.Size)
	require.Len(t, body.Content, 20)
	assert.Equal(t, "DC-1025", body.Content[0].DieNumber)
	assert.False(t, body.First)
	assert.False(t, body.Last)
}

func TestListDieCutsPastLastPage(t *testing.T) {
	_, r := newTestServer(t)

	for _, page := range []string{"3", "4611686018427387904"} {
		w := do(r, http.MethodGet, "/api/die-cuts?page="+page+"&size=20", nil)
		require.Equal(t, http.StatusOK, w.Code, page)

		var body response.PageBody[models.DieCut]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body.Content, page)
		assert.Equal(t, 45, body.TotalElements)
		assert.Equal(t, 3, body.TotalPages)
		assert.True(t, body.Last)
	}
}

func TestListDieCutsFilters(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/api/die-cuts?status=ACTIVE&machine=E5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.PageBody[models.DieCut]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Content)
	for _, d := range body.Content {
		assert.Equal(t, models.DieCutActive, d.Status)
		assert.Equal(t, "E5", models.StringValue(d.Machine))
	}
}

func TestListRawMaterialsThroughSearch(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/api/raw-materials/search?supplier=herma&size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.PageBody[models.RawMaterial]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 8, body.TotalElements)
	assert.Equal(t, 2, body.TotalPages)
	for _, m := range body.Content {
		assert.Equal(t, "Herma", m.Supplier)
	}
}

func TestListInksIsBareArray(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/api/inks?status=ACTIVE&page=3&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, byte('['), bytes.TrimSpace(w.Body.Bytes())[0])

	var inks []models.Ink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inks))
	assert.Len(t, inks, 4)
}

func TestCreateDieCutValidation(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodPost, "/api/die-cuts", dto.DieCutPayload{DieNumber: "DC-9000", Status: models.DieCutActive})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.FieldErrors, 1)
	assert.Equal(t, "machine", body.FieldErrors[0].Field)
}

func TestCreateDieCutDuplicateNumber(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodPost, "/api/die-cuts", dto.DieCutPayload{DieNumber: "dc-1001", Status: models.DieCutInactive})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.FieldErrors, 1)
	assert.Equal(t, "dieNumber", body.FieldErrors[0].Field)
}

func TestDieCutLifecycle(t *testing.T) {
	s, r := newTestServer(t)

	w := do(r, http.MethodPost, "/api/die-cuts", dto.DieCutPayload{DieNumber: "DC-9001", Status: models.DieCutActive, Machine: models.StringPtr("P7")})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.DieCut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(46), created.ID)

	w = do(r, http.MethodPut, "/api/die-cuts/46", dto.DieCutPayload{DieNumber: "DC-9001", Status: models.DieCutArchived, Machine: models.StringPtr("P7")})
	require.Equal(t, http.StatusOK, w.Code)
	stored, ok := s.DieCuts.Get(46)
	require.True(t, ok)
	assert.Nil(t, stored.Machine)
	assert.Equal(t, created.CreatedDate, stored.CreatedDate)

	w = do(r, http.MethodDelete, "/api/die-cuts/46", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/die-cuts/46", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownIDs(t *testing.T) {
	_, r := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/inks/999", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/inks/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/raw-materials/999", nil).Code)
}

func TestMalformedBody(t *testing.T) {
	_, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/inks", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocsOnlyWhenEnabled(t *testing.T) {
	_, r := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/docs/doc.json", nil).Code)

	s := NewServer(Options{Metrics: service.NewMetricsService(), Docs: true})
	w := do(s.Router(), http.MethodGet, "/docs/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Print Shop Inventory Stub")
	assert.Contains(t, w.Body.String(), "/api/raw-materials/search")
}
