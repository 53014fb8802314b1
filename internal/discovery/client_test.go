package discovery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testClient() *Client {
	return NewClientWith(&http.Client{})
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://api.acme.test", "https://api.acme.test"},
		{"https://api.acme.test/", "https://api.acme.test"},
		{"https://api.acme.test///", "https://api.acme.test"},
		{"https://api.acme.test/v1", "https://api.acme.test"},
		{"https://api.acme.test/v1/", "https://api.acme.test"},
		{"https://api.acme.test/proxy/v1", "https://api.acme.test/proxy"},
		{"https://api.acme.test/v1beta", "https://api.acme.test/v1beta"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBaseURL(tt.input), "input %q", tt.input)
	}
}

func TestDiscoverEndpointPrefersVersionedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	endpoint, ok := testClient().DiscoverEndpoint(server.URL)
	require.True(t, ok)
	assert.Equal(t, server.URL+"/v1/models", endpoint)
}

func TestDiscoverEndpointFallsBackToUnversioned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	endpoint, ok := testClient().DiscoverEndpoint(server.URL)
	require.True(t, ok)
	assert.Equal(t, server.URL+"/models", endpoint)
}

func TestDiscoverEndpointUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, ok := testClient().DiscoverEndpoint(server.URL)
	assert.False(t, ok)

	// A closed server behaves the same as one rejecting every path.
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closed.Close()
	_, ok = testClient().DiscoverEndpoint(closed.URL)
	assert.False(t, ok)
}

func TestDiscoverEndpointStripsV1Suffix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	// Supplying the base with /v1 must not produce /v1/v1/models.
	endpoint, ok := testClient().DiscoverEndpoint(server.URL + "/v1")
	require.True(t, ok)
	assert.Equal(t, server.URL+"/v1/models", endpoint)
}

func TestFetchModelsSendsBearerOnlyWhenKeySet(t *testing.T) {
	var authHeaders []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":[{"id":"m1"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient()
	_, ok := client.FetchModels(server.URL, "sk-secret")
	require.True(t, ok)

	// Two hits: the unauthenticated discovery probe, then the real fetch.
	require.Len(t, authHeaders, 2)
	assert.Empty(t, authHeaders[0], "discovery probe must not carry the credential")
	assert.Equal(t, "Bearer sk-secret", authHeaders[1])

	authHeaders = nil
	_, ok = client.FetchModels(server.URL, "")
	require.True(t, ok)
	require.Len(t, authHeaders, 2)
	assert.Empty(t, authHeaders[1], "empty key must not produce an Authorization header")
}

func TestFetchModelsRejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, ok := testClient().FetchModels(server.URL, "")
	assert.False(t, ok)
}

func TestListModelNamesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"openai data shape", `{"data":[{"id":"m1"},{"id":"m2"}]}`, []string{"m1", "m2"}},
		{"data items without string id skipped", `{"data":[{"id":"m1"},{"name":"x"},{"id":7},"bare"]}`, []string{"m1"}},
		{"models object shape", `{"models":[{"id":"m1"},{"id":"m2"}]}`, []string{"m1", "m2"}},
		{"models string shape", `{"models":["m1","m2"]}`, []string{"m1", "m2"}},
		{"models mixed shape", `{"models":[{"id":"m1"},"m2",{"name":"skip"}]}`, []string{"m1", "m2"}},
		{"bare array of objects", `[{"id":"m1"},{"id":"m2"}]`, []string{"m1", "m2"}},
		{"bare array of strings", `["m1","m2"]`, []string{"m1", "m2"}},
		{"data wins over models", `{"data":[{"id":"d1"}],"models":["m1"]}`, []string{"d1"}},
		{"unrecognized shape", `{"items":["m1"]}`, []string{}},
		{"empty object", `{}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got := testClient().ListModelNames(server.URL, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListModelNamesUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	got := testClient().ListModelNames(server.URL, "")
	assert.Equal(t, []string{}, got)
}

func TestProbeModelNamesSeparatesFailureModes(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer empty.Close()

	names, ok := testClient().ProbeModelNames(empty.URL, "")
	assert.True(t, ok, "reachable empty provider should report ok")
	assert.Empty(t, names)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	names, ok = testClient().ProbeModelNames(down.URL, "")
	assert.False(t, ok)
	assert.Nil(t, names)
}

func TestExtractModelNamesNonArrayFields(t *testing.T) {
	// data/models present but not arrays fall through to nothing.
	assert.Equal(t, []string{}, ExtractModelNames(gjson.Parse(`{"data":"nope"}`)))
	assert.Equal(t, []string{}, ExtractModelNames(gjson.Parse(`{"models":{"id":"m1"}}`)))
	assert.Equal(t, []string{}, ExtractModelNames(gjson.Parse(`"just a string"`)))
}
