package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evcharge/core/simulation"
	"github.com/kilianp07/evcharge/pkg/export"
)

func finishedRun(t *testing.T) *simulation.Result {
	t.Helper()
	sim, err := simulation.New(simulation.Config{RunID: "api-run", Preset: simulation.PresetSimple, Turns: 10}, nil, nil)
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestHandler_ServesReport(t *testing.T) {
	res := finishedRun(t)
	h := NewHandler(func() *simulation.Result { return res }, "tok")

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var out export.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "api-run", out.RunID)
	assert.Equal(t, 10, out.Turns)
	assert.Len(t, out.Vehicles, 2)
}

func TestHandler_Unavailable(t *testing.T) {
	h := NewHandler(func() *simulation.Result { return nil }, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_Unauthorized(t *testing.T) {
	h := NewHandler(func() *simulation.Result { return nil }, "tok")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	req.Header.Set("Authorization", "Bearer nope")
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
