package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drakos74/curvefit/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Fit(t *testing.T) {

	type test struct {
		method string
		path   string
		body   string
		code   int
	}

	tests := map[string]test{
		"live": {
			method: http.MethodGet,
			path:   "/data",
			code:   http.StatusOK,
		},
		"fit": {
			method: http.MethodPost,
			path:   "/api/fit",
			body:   `{"fitter":"polynomial","degree":1,"points":[{"x":0,"y":1},{"x":1,"y":3},{"x":2,"y":5}]}`,
			code:   http.StatusOK,
		},
		"wrong-method": {
			method: http.MethodGet,
			path:   "/api/fit",
			code:   http.StatusMethodNotAllowed,
		},
		"empty-body": {
			method: http.MethodPost,
			path:   "/api/fit",
			code:   http.StatusBadRequest,
		},
		"bad-json": {
			method: http.MethodPost,
			path:   "/api/fit",
			body:   `{"fitter":`,
			code:   http.StatusBadRequest,
		},
		"unknown-fitter": {
			method: http.MethodPost,
			path:   "/api/fit",
			body:   `{"fitter":"spline","points":[{"x":0,"y":1}]}`,
			code:   http.StatusBadRequest,
		},
		"insufficient-data": {
			method: http.MethodPost,
			path:   "/api/fit",
			body:   `{"fitter":"harmonic","points":[{"x":0,"y":1},{"x":1,"y":0},{"x":2,"y":-1}]}`,
			code:   http.StatusBadRequest,
		},
		"metrics": {
			method: http.MethodGet,
			path:   "/metrics",
			code:   http.StatusOK,
		},
	}

	srv := httptest.NewServer(NewServer("test", ":0").Add(Live(), Fit()).Handler())
	defer srv.Close()

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestServer_FitResult(t *testing.T) {
	srv := httptest.NewServer(NewServer("test", ":0").Debug().Add(Fit()).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/fit", "application/json",
		strings.NewReader(`{"id":"line","fitter":"polynomial","degree":1,"points":[{"x":0,"y":1},{"x":1,"y":3},{"x":2,"y":5}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result job.Result
	require.NoError(t, json.Unmarshal(b, &result))
	assert.Equal(t, "line", result.ID)
	assert.Equal(t, job.Polynomial, result.Fitter)
	require.Len(t, result.Parameters, 2)
	assert.InDelta(t, 1, result.Parameters[0], 1e-8)
	assert.InDelta(t, 2, result.Parameters[1], 1e-8)
	assert.Len(t, result.ClosedForm, 2)
}
