package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cnckit/cutmode"
	httpAdapter "github.com/cnckit/cutmode/pkg/adapters/http"
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine, err := cutmode.New()
	require.NoError(t, err)

	srv := httptest.NewServer(httpAdapter.NewHandler(engine))
	t.Cleanup(srv.Close)
	return srv
}

func postAdvance(t *testing.T, srv *httptest.Server, sessionID, input string) (*http.Response, *domain.Reply) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"input": input})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/sessions/"+sessionID+"/advance", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	var reply domain.Reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return resp, &reply
}

func TestServer_Conversation(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions/abc/start", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply domain.Reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, domain.OutcomePrompt, reply.Outcome)
	assert.Equal(t, domain.StepMaterial, reply.Step)
	assert.Contains(t, reply.Options, "steel")

	for _, input := range []string{"steel", "drilling", "indexable"} {
		stepResp, r := postAdvance(t, srv, "abc", input)
		require.Equal(t, http.StatusOK, stepResp.StatusCode)
		require.Equal(t, domain.OutcomePrompt, r.Outcome, "input %q", input)
	}

	_, final := postAdvance(t, srv, "abc", "10")
	require.NotNil(t, final)
	assert.Equal(t, domain.OutcomeResult, final.Outcome)
	require.NotNil(t, final.Result)
	assert.Equal(t, 85.0, final.Result.Speed)
}

func TestServer_UnknownSession(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postAdvance(t, srv, "never-started", "steel")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RestartCreatesSession(t *testing.T) {
	srv := newTestServer(t)

	// /start as input bootstraps a session that was never explicitly started.
	resp, reply := postAdvance(t, srv, "fresh", "/start")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StepMaterial, reply.Step)
}

func TestServer_BadRequestBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions/abc/advance", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_CatalogAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["paths"], "steel/drilling/indexable/carbide")

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
