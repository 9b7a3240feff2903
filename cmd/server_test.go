package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/rebeam/custom"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	d := &timesig.Deriver{Overrides: custom.Static{"7/8": {Split8: model.Positions{2, 4}}}}
	return NewServer(d, false, []string{"*"}, nil)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestTimeSigEndpoint(t *testing.T) {
	h := newTestServer().Router()
	w := post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 6, Denominator: 4, ScoreNumerators: []int{4, 6}})

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var rules model.BeamRuleSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rules))
	assert.Equal(model.Positions{0, 4, 8, 12}, rules.Split8)
	assert.Equal(model.RestsOnly, rules.Sub8In16Treatment)
}

func TestTimeSigEndpointCustom(t *testing.T) {
	h := newTestServer().Router()
	w := post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 7, Denominator: 8, Custom: true})

	var rules model.BeamRuleSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rules))
	assert.Equal(t, model.Positions{0, 2, 4, 7}, rules.Split8)
}

func TestTimeSigEndpointNarrow(t *testing.T) {
	s := newTestServer()
	s.deriver.Overrides = nil
	w := post(t, s.Router(), "/timesig", model.TimeSigRequestBody{Numerator: 4, Denominator: 4, Narrow: true})

	var rules model.BeamRuleSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rules))
	assert.Equal(t, model.RestsOnly, rules.Sub8In16Treatment, "beam is Both so nothing narrows")
}

func TestTimeSigEndpointFatal(t *testing.T) {
	h := newTestServer().Router()
	w := post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 3, Denominator: 7, Measure: 4})

	assert := assert.New(t)
	assert.Equal(http.StatusUnprocessableEntity, w.Code)
	var e model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Contains(e.Error, "measure 5")
}

func TestTimeSigEndpointBadBody(t *testing.T) {
	h := newTestServer().Router()
	req := httptest.NewRequest(http.MethodPost, "/timesig", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 0, Denominator: 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTupletEndpoint(t *testing.T) {
	h := newTestServer().Router()
	w := post(t, h, "/tuplet", model.TupletRequestBody{Count: 3, Unit: "1/2"})

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	var rules model.TupletBeamRuleSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rules))
	assert.Equal(model.Positions{0, 4, 8, 12}, rules.Split8)
	assert.True(rules.SimplifyBrackets)
	assert.Equal(model.Both, rules.Beam)

}

func TestOversizedInputIsRejected(t *testing.T) {
	h := newTestServer().Router()

	tests := []struct {
		name string
		path string
		body any
	}{
		{"zero numerator", "/timesig", model.TimeSigRequestBody{Numerator: 0, Denominator: 4}},
		{"huge numerator", "/timesig", model.TimeSigRequestBody{Numerator: 2000000, Denominator: 1}},
		{"numerator past midi range", "/timesig", model.TimeSigRequestBody{Numerator: 256, Denominator: 4}},
		{"zero count", "/tuplet", model.TupletRequestBody{Count: 0, Unit: "1/2"}},
		{"huge count", "/tuplet", model.TupletRequestBody{Count: 2000000, Unit: "1/16"}},
		{"infinite unit", "/tuplet", model.TupletRequestBody{Count: 1, Unit: "1e400"}},
		{"long span", "/tuplet", model.TupletRequestBody{Count: 9, Unit: "2"}},
		{"bad unit", "/tuplet", model.TupletRequestBody{Count: 3, Unit: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 255, Denominator: 4})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLargeBodyIsRejected(t *testing.T) {
	h := newTestServer().Router()
	numerators := make([]int, maxRequestBodySize)
	for i := range numerators {
		numerators[i] = 4
	}
	w := post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 4, Denominator: 4, ScoreNumerators: numerators})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBeamModeEndpoint(t *testing.T) {
	h := newTestServer().Router()

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert := assert.New(t)
	w := get("/beammode/2")
	assert.Equal(http.StatusOK, w.Code)
	var res model.BeamModeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(model.BeamModeResponse{Legacy: 2, Mode: 5, Name: "mid"}, res)

	w = get("/beammode/9")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(0, res.Mode)

	assert.Equal(http.StatusBadRequest, get("/beammode/x").Code)
}

func TestMetricsCountDerivations(t *testing.T) {
	h := newTestServer().Router()
	post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 4, Denominator: 4})
	post(t, h, "/timesig", model.TimeSigRequestBody{Numerator: 4, Denominator: 3})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Result().Body)

	assert.Contains(t, string(body), `rebeam_derivations_total{kind="timesig",outcome="ok"} 1`)
	assert.Contains(t, string(body), `rebeam_derivations_total{kind="timesig",outcome="fatal"} 1`)
}

func TestCORSHeaders(t *testing.T) {
	h := newTestServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/beammode/1", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
