package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senscalc/adapters/excel"
	"senscalc/app"
	"senscalc/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calc := app.NewCalculatorService(nil, nil, nil)
	srv, err := NewServer(calc, nil, excel.NewReportWriter(), nil)
	require.NoError(t, err)
	return srv
}

func postJSON(t *testing.T, srv *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestCalculation_EmptyBodySolvesWithDefaults(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/v1/calculation", map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.SolvedSensitivity, res.Solved)
	assert.Equal(t, "mJy", res.Unit)
	assert.Greater(t, res.Value, 0.0)
	assert.Equal(t, models.DefaultObsFreqGHz, res.ObsFreqGHz)
	assert.NotEmpty(t, res.ID)
}

func TestCalculation_SensitivityPicksInverseBranch(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/v1/calculation", map[string]interface{}{
		"sensitivity_mjy": 2.0,
		"zenith_opacity":  0.1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.SolvedIntegrationTime, res.Solved)
	assert.Equal(t, "s", res.Unit)
	assert.Greater(t, res.Value, 0.0)
	assert.Equal(t, 2.0, res.SensitivityMJy)
}

func TestCalculation_ErrorKindMapping(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		body   map[string]interface{}
		status int
		kind   string
	}{
		{
			"negative elevation",
			map[string]interface{}{"elevation_deg": -10.0},
			http.StatusBadRequest, "INVALID_GEOMETRY",
		},
		{
			"efficiency above one",
			map[string]interface{}{"eta_ill": 1.5},
			http.StatusBadRequest, "INVALID_EFFICIENCY",
		},
		{
			"unknown mode",
			map[string]interface{}{"mode": "nodding"},
			http.StatusBadRequest, "UNSUPPORTED_MODE",
		},
		{
			"zero bandwidth",
			map[string]interface{}{"bandwidth_ghz": 0.0},
			http.StatusBadRequest, "VALIDATION_ERROR",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, srv, "/v1/calculation", tc.body)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCalculation_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/calculation", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Kind)
}

func TestSensitivityEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/v1/sensitivity", map[string]interface{}{
		"t_int_s":        3600.0,
		"zenith_opacity": 0.1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.SolvedSensitivity, res.Solved)
	assert.Equal(t, 3600.0, res.IntegrationTimeS)
}

func TestIntegrationTimeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/v1/integration-time", map[string]interface{}{
		"sensitivity_mjy": 1.0,
		"zenith_opacity":  0.1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.SolvedIntegrationTime, res.Solved)
}

func TestReportEndpoint_ServesXLSX(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/v1/report", map[string]interface{}{
		"t_int_s":        3600.0,
		"zenith_opacity": 0.1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestParamValuesUnits(t *testing.T) {
	srv := newTestServer(t)

	w := getPath(t, srv, "/v1/param-values-units")
	require.Equal(t, http.StatusOK, w.Code)

	var params []models.ParameterInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	assert.NotEmpty(t, params)

	byName := map[string]models.ParameterInfo{}
	for _, p := range params {
		byName[p.Name] = p
	}
	freq, ok := byName["obs_freq"]
	require.True(t, ok, "catalogue must list the observing frequency")
	assert.Equal(t, "GHz", freq.Unit)
	assert.Equal(t, models.DefaultObsFreqGHz, freq.DefaultValue)
}

func TestHistoryEndpoints_WithoutDatabase(t *testing.T) {
	srv := newTestServer(t)

	w := getPath(t, srv, "/v1/calculations")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = getPath(t, srv, "/v1/calculations/calc-1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	w := getPath(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCalculatorFormRenders(t *testing.T) {
	srv := newTestServer(t)
	w := getPath(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "obs_freq")
}

func TestDocsRenders(t *testing.T) {
	srv := newTestServer(t)
	w := getPath(t, srv, "/docs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h")
}
