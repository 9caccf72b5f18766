package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/kestrel"
	kestrelhttp "github.com/aretw0/kestrel/pkg/adapters/http"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	k := kestrel.New()
	k.Save("greet", &domain.FuncService{
		Input:  domain.InputSpec{Required: []string{"name"}},
		Output: domain.Outputs("greeting"),
		Handler: func(ctx context.Context, msg *domain.Message) *domain.Result {
			name, _ := msg.Param("name").(string)
			return &domain.Result{
				Valid:  true,
				Fields: map[string]any{"greeting": "hello " + name},
			}
		},
	})

	wf := domain.Workflow{{Service: "greet"}}
	k.Save("greet-flow", wf)
	k.AddNavigator("#greet", wf)

	handler, err := kestrelhttp.NewHandler(k)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLaunchEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"navigator": "#greet:name=ada",
	})
	resp, err := http.Post(srv.URL+"/launch", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Valid)
}

func TestLaunchEndpoint_UnknownRoot(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"navigator": "#/missingroot"})
	resp, err := http.Post(srv.URL+"/launch", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Unregistered roots are not an error, just an invalid launch.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Valid)
}

func TestExecuteEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"memory": map[string]any{"name": "grace"},
	})
	resp, err := http.Post(srv.URL+"/workflows/greet-flow/execute", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Valid  bool           `json:"valid"`
		Memory map[string]any `json:"memory"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Valid)
	assert.Equal(t, "hello grace", out.Memory["greeting"])
}

func TestExecuteEndpoint_UnknownWorkflow(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/workflows/nope/execute", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNavigatorsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/navigators")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Navigators []string `json:"navigators"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Navigators, "#greet")
}

func TestOpenAPIEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
}
