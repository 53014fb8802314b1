// Package discovery probes provider base URLs for a models-listing
// endpoint and extracts model identifiers from the common response shapes.
// Every network or parse failure degrades to "no models found"; nothing in
// this package returns an error to its caller.
package discovery

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/logging"
)

const requestTimeout = 10 * time.Second

// Candidate paths in preference order: versioned listing first, then the
// unversioned fallback.
var probePaths = []string{"/v1/models", "/models"}

// Client performs model discovery against a provider endpoint.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a client with a bounded-timeout pooled HTTP transport.
func NewClient() *Client {
	return NewClientWith(&http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:          10,
			IdleConnTimeout:       30 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	})
}

// NewClientWith returns a client using the supplied HTTP client. Tests use
// this to point discovery at httptest servers.
func NewClientWith(hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		log:        logging.New("discovery"),
	}
}

// NormalizeBaseURL strips trailing slashes and a trailing /v1 path segment,
// so callers can supply the base either with or without the version prefix.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(raw, "/")

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if strings.HasSuffix(parsed.Path, "/v1") {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/v1")
		trimmed = strings.TrimRight(parsed.String(), "/")
	}
	return trimmed
}

// DiscoverEndpoint tries the candidate paths in order and returns the first
// that answers with a success status. The probes are unauthenticated; a
// provider that rejects both is indistinguishable from an unreachable one.
func (c *Client) DiscoverEndpoint(baseURL string) (string, bool) {
	base := NormalizeBaseURL(baseURL)

	for _, path := range probePaths {
		endpoint := base + path
		resp, err := c.httpClient.Get(endpoint)
		if err != nil {
			c.log.Debug().Err(err).Str("endpoint", endpoint).Msg("probe failed")
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return endpoint, true
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("probe rejected")
	}
	return "", false
}

// FetchModels discovers the endpoint and issues one GET, with a bearer
// credential when apiKey is non-empty. It returns the parsed body, or
// ok=false on any discovery, transport or parse failure.
func (c *Client) FetchModels(baseURL, apiKey string) (gjson.Result, bool) {
	endpoint, ok := c.DiscoverEndpoint(baseURL)
	if !ok {
		return gjson.Result{}, false
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, false
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("endpoint", endpoint).Msg("fetch failed")
		return gjson.Result{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("fetch rejected")
		return gjson.Result{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, false
	}
	if !gjson.ValidBytes(body) {
		c.log.Debug().Str("endpoint", endpoint).Msg("response is not valid JSON")
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(body), true
}

// ListModelNames returns the model identifiers served at baseURL, or an
// empty list when the provider is unreachable or the response shape is
// unrecognized.
func (c *Client) ListModelNames(baseURL, apiKey string) []string {
	doc, ok := c.FetchModels(baseURL, apiKey)
	if !ok {
		return []string{}
	}
	return ExtractModelNames(doc)
}

// ProbeModelNames is ListModelNames with the failure modes kept apart:
// ok=false means the provider is unreachable, while ok=true with an empty
// list means it answered but serves no models.
func (c *Client) ProbeModelNames(baseURL, apiKey string) ([]string, bool) {
	doc, ok := c.FetchModels(baseURL, apiKey)
	if !ok {
		return nil, false
	}
	return ExtractModelNames(doc), true
}

// ExtractModelNames pulls identifiers out of the known listing shapes:
// OpenAI-style {data:[{id}]}, {models:[{id}|"name"]}, or a bare top-level
// array of the same item forms. Anything else yields an empty list.
func ExtractModelNames(doc gjson.Result) []string {
	names := []string{}

	if data := doc.Get("data"); data.IsArray() {
		data.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				if id := item.Get("id"); id.Type == gjson.String {
					names = append(names, id.Str)
				}
			}
			return true
		})
		return names
	}

	if models := doc.Get("models"); models.IsArray() {
		models.ForEach(func(_, item gjson.Result) bool {
			appendName(&names, item)
			return true
		})
		return names
	}

	if doc.IsArray() {
		doc.ForEach(func(_, item gjson.Result) bool {
			appendName(&names, item)
			return true
		})
	}
	return names
}

func appendName(names *[]string, item gjson.Result) {
	switch {
	case item.IsObject():
		if id := item.Get("id"); id.Type == gjson.String {
			*names = append(*names, id.Str)
		}
	case item.Type == gjson.String:
		*names = append(*names, item.Str)
	}
}
