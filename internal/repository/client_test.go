package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
	"github.com/noah-isme/printshop-console/pkg/middleware/requestid"
)

type observed struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (o *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observed{method, path, status})
}

func TestClientListSendsQuery(t *testing.T) {
	var gotQuery, gotPath, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get(requestid.HeaderKey)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":20}`)
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	repo := NewRawMaterialRepository(NewClient(srv.URL+"/", time.Second, observer, zap.NewNop()))

	raw, err := repo.List(context.Background(), models.Query{"page": "0", "size": "20", "sort": "id,desc", "status": "READY"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":20}`, string(raw))
	assert.Equal(t, "/api/raw-materials/search", gotPath)
	assert.Equal(t, "page=0&size=20&sort=id%2Cdesc&status=READY", gotQuery)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, []observed{{http.MethodGet, "/api/raw-materials/search", http.StatusOK}}, observer.calls)
}

func TestClientCreateAndUpdate(t *testing.T) {
	var bodies []dto.DieCutPayload
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload dto.DieCutPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		bodies = append(bodies, payload)
		methods = append(methods, r.Method+" "+r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.DieCut{ID: 12, DieNumber: payload.DieNumber, Status: payload.Status})
	}))
	defer srv.Close()

	repo := NewDieCutRepository(NewClient(srv.URL, time.Second, nil, nil))
	payload := dto.DieCutPayload{DieNumber: "DC-12", Status: models.DieCutActive, Machine: models.StringPtr("E5")}

	created, err := repo.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)

	_, err = repo.Update(context.Background(), 12, payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"POST /api/die-cuts", "PUT /api/die-cuts/12"}, methods)
	require.Len(t, bodies, 2)
	assert.Equal(t, "E5", models.StringValue(bodies[0].Machine))
}

func TestClientErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "field list",
			status: http.StatusBadRequest,
			body:   `{"status":400,"message":"invalid payload","fieldErrors":[{"field":"machine","message":"is required"}]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, appErrors.IsServerValidation(err))
				appErr := appErrors.FromError(err)
				assert.Equal(t, []string{"machine"}, appErr.FieldNames())
				assert.Equal(t, "invalid payload", appErr.Message)
			},
		},
		{
			name:   "field map",
			status: http.StatusUnprocessableEntity,
			body:   `{"errors":{"supplier":"must not be blank","batchNumber":"must not be blank"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, appErrors.IsServerValidation(err))
				assert.Equal(t, []string{"batchNumber", "supplier"}, appErrors.FromError(err).FieldNames())
			},
		},
		{
			name:   "bad request without fields",
			status: http.StatusBadRequest,
			body:   `{"message":"malformed"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, appErrors.IsTransport(err))
				assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   ``,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, appErrors.ErrNotFound)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `<html>oops</html>`,
			check: func(t *testing.T, err error) {
				assert.True(t, appErrors.IsTransport(err))
				assert.Contains(t, err.Error(), "500")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			repo := NewInkRepository(NewClient(srv.URL, time.Second, nil, nil))
			_, err := repo.Get(context.Background(), 3)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	observer := &recordingObserver{}
	repo := NewInkRepository(NewClient(url, time.Second, observer, nil))
	err := repo.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, appErrors.IsTransport(err))
	require.Len(t, observer.calls, 1)
	assert.Equal(t, 0, observer.calls[0].status)
}

func TestClientUndecodableRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[1,2,3]`)
	}))
	defer srv.Close()

	repo := NewDieCutRepository(NewClient(srv.URL, time.Second, nil, nil))
	_, err := repo.Get(context.Background(), 1)
	assert.ErrorIs(t, err, appErrors.ErrUnexpectedResponseForm)
}
