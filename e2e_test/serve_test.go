//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/rebeam/cmd"
	"github.com/jsphweid/rebeam/custom"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rebeam-e2e")
	if err != nil {
		panic(err.Error())
	}
	overrides := filepath.Join(dir, "overrides.yaml")
	if err := os.WriteFile(overrides, []byte("overrides:\n  7/8: {split8: [2, 4]}\n"), 0o644); err != nil {
		panic(err.Error())
	}
	src, err := custom.NewFileSource(overrides)
	if err != nil {
		panic(err.Error())
	}

	s := cmd.NewServer(&timesig.Deriver{Overrides: src}, false, []string{"*"}, nil)
	server = httptest.NewServer(s.Router())

	exitVal := m.Run()

	server.Close()
	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func postJSON(t *testing.T, path string, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestFourFourE2E(t *testing.T) {
	resp := postJSON(t, "/timesig", model.TimeSigRequestBody{Numerator: 4, Denominator: 4})
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var rules model.BeamRuleSet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rules))
	assert.Equal(model.Positions{0, 4, 8}, rules.Split8)
}

func TestCustomSevenEightE2E(t *testing.T) {
	resp := postJSON(t, "/timesig", model.TimeSigRequestBody{Numerator: 7, Denominator: 8, Custom: true})
	defer resp.Body.Close()

	var rules model.BeamRuleSet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rules))
	assert.Equal(t, model.Positions{0, 2, 4, 7}, rules.Split8)
}

func TestUnknownDenominatorE2E(t *testing.T) {
	resp := postJSON(t, "/timesig", model.TimeSigRequestBody{Numerator: 3, Denominator: 7})
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	var e model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal("unrecognised time signature 3/7 at measure 1", e.Error)
}
