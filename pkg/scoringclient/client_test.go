package scoringclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringServer(t *testing.T, key string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/score", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if key != "" && r.Header.Get("Authorization") != "Bearer "+key {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in struct {
			X float64 `json:"x"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]float64{"prediction": in.X * 2},
		})
	})
	mux.HandleFunc("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"swagger": "2.0"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestInvoke(t *testing.T) {
	srv := newScoringServer(t, "")
	c := New("")

	result, err := c.Invoke(context.Background(), srv.URL+"/score", []byte(`{"x": 987.654}`))
	require.NoError(t, err)

	var out struct {
		Prediction float64 `json:"prediction"`
	}
	require.NoError(t, json.Unmarshal(result, &out))
	assert.InDelta(t, 1975.308, out.Prediction, 0.001)
}

func TestInvokeWithoutContentType(t *testing.T) {
	// Some endpoints answer JSON without declaring the content type; the
	// client must still parse the result.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"prediction": 42}}`))
	}))
	t.Cleanup(srv.Close)

	result, err := New("").Invoke(context.Background(), srv.URL+"/score", []byte(`{"x": 1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction": 42}`, string(result))
}

func TestInvokeWithKey(t *testing.T) {
	srv := newScoringServer(t, "secret")

	_, err := New("secret").Invoke(context.Background(), srv.URL+"/score", []byte(`{"x": 1}`))
	assert.NoError(t, err)

	_, err = New("wrong").Invoke(context.Background(), srv.URL+"/score", []byte(`{"x": 1}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSwagger(t *testing.T) {
	srv := newScoringServer(t, "")

	doc, err := New("").Swagger(context.Background(), srv.URL+"/swagger.json")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "swagger")
}

func TestHealthy(t *testing.T) {
	srv := newScoringServer(t, "")
	c := New("")

	assert.True(t, c.Healthy(context.Background(), srv.URL+"/score"))

	srv.Close()
	assert.False(t, c.Healthy(context.Background(), srv.URL+"/score"))
}
