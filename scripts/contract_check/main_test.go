package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	kind, fields := describe([]byte(`{"content":[{"id":1,"dieNumber":"DC-1"}],"totalPages":1}`))
	assert.Equal(t, "envelope", kind)
	assert.Equal(t, []string{"dieNumber", "id"}, fields)

	kind, fields = describe([]byte(`[{"id":1,"batchNumber":"INK-1"}]`))
	assert.Equal(t, "array", kind)
	assert.Equal(t, []string{"batchNumber", "id"}, fields)

	kind, fields = describe([]byte(`{"status":404,"message":"not found"}`))
	assert.Equal(t, "object", kind)
	assert.Equal(t, []string{"message", "status"}, fields)

	kind, _ = describe([]byte(`not json`))
	assert.Equal(t, "other", kind)
}

func TestComparisonMatches(t *testing.T) {
	same := shape{Status: http.StatusOK, Kind: "envelope", Fields: []string{"id"}}
	assert.True(t, comparison{Stub: same, Backend: same}.matches())
	assert.False(t, comparison{Stub: same, Backend: shape{Status: http.StatusOK, Kind: "array", Fields: []string{"id"}}}.matches())

	var buf bytes.Buffer
	printReport(&buf, []comparison{{Target: target{Method: "GET", Path: "/api/inks"}, Stub: same, Backend: same}})
	assert.Contains(t, buf.String(), "OK")
	assert.Contains(t, buf.String(), "/api/inks")
}
