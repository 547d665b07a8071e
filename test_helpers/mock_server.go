package test_helpers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// TokenPath is where the mock serves the OAuth token endpoint.
const TokenPath = "/api/v1/access_token"

// MockServer is a scripted Reddit API. Each path answers with a sequence of
// responses; once the sequence is exhausted the last response repeats.
type MockServer struct {
	server *httptest.Server

	mu         sync.Mutex
	routes     map[string][]*MockResponse
	tokens     []*MockResponse
	callCount  map[string]int
	requestLog []RequestEntry
}

// RequestEntry logs incoming requests for assertions
type RequestEntry struct {
	Method    string
	Path      string
	Query     string
	Headers   http.Header
	Body      string
	Timestamp time.Time
	Status    int
}

// MockResponse defines a mock API response
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// NewMockServer starts a mock server. Until SetTokenResponses is called the
// token endpoint issues "token-1", "token-2", ... on successive calls.
func NewMockServer() *MockServer {
	ms := &MockServer{
		routes:    make(map[string][]*MockResponse),
		callCount: make(map[string]int),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.serveHTTP))
	return ms
}

// URL returns the base URL of the mock server
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// BaseURL returns the API root with a trailing slash.
func (ms *MockServer) BaseURL() string {
	return ms.server.URL + "/"
}

// TokenURL returns the absolute token endpoint URL.
func (ms *MockServer) TokenURL() string {
	return ms.server.URL + TokenPath
}

// Client returns an HTTP client wired to the server.
func (ms *MockServer) Client() *http.Client {
	return ms.server.Client()
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures a single repeating response for path.
func (ms *MockServer) SetResponse(path string, response *MockResponse) {
	ms.SetSequence(path, response)
}

// SetSequence configures responses for path, served in order.
func (ms *MockServer) SetSequence(path string, responses ...*MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.routes[path] = responses
}

// SetTokenResponses overrides the token endpoint with a scripted sequence.
func (ms *MockServer) SetTokenResponses(responses ...*MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.tokens = responses
}

// CallCount returns how many requests reached path.
func (ms *MockServer) CallCount(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.callCount[path]
}

// TokenCalls returns how many token exchanges were made.
func (ms *MockServer) TokenCalls() int {
	return ms.CallCount(TokenPath)
}

// TotalCalls returns the number of requests across all paths.
func (ms *MockServer) TotalCalls() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requestLog)
}

// Requests returns the logged requests for path, oldest first.
func (ms *MockServer) Requests(path string) []RequestEntry {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var entries []RequestEntry
	for _, entry := range ms.requestLog {
		if entry.Path == path {
			entries = append(entries, entry)
		}
	}
	return entries
}

// GetLastRequest returns the last request made to a specific path
func (ms *MockServer) GetLastRequest(path string) (*RequestEntry, error) {
	entries := ms.Requests(path)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no requests found for path: %s", path)
	}
	return &entries[len(entries)-1], nil
}

// AssertRequestCount asserts that a specific number of requests were made to a path
func (ms *MockServer) AssertRequestCount(path string, expectedCount int) error {
	actualCount := ms.CallCount(path)
	if actualCount != expectedCount {
		return fmt.Errorf("expected %d requests to %s, got %d", expectedCount, path, actualCount)
	}
	return nil
}

func (ms *MockServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.callCount[r.URL.Path]++
	n := ms.callCount[r.URL.Path]
	response := ms.pick(r.URL.Path, n)
	ms.requestLog = append(ms.requestLog, RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		Headers:   r.Header.Clone(),
		Body:      string(body),
		Timestamp: time.Now(),
		Status:    response.Status,
	})
	ms.mu.Unlock()

	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}
	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(response.Status)
	io.WriteString(w, response.Body)
}

// pick must be called with mu held. n is the 1-based call number for path.
func (ms *MockServer) pick(path string, n int) *MockResponse {
	sequence := ms.routes[path]
	if path == TokenPath && len(ms.tokens) > 0 {
		sequence = ms.tokens
	}

	if len(sequence) == 0 {
		if path == TokenPath {
			return TokenResponse(fmt.Sprintf("token-%d", n))
		}
		return &MockResponse{Status: http.StatusNotFound, Body: `{"message": "Not Found", "error": 404}`}
	}
	if n > len(sequence) {
		return sequence[len(sequence)-1]
	}
	return sequence[n-1]
}

// BearerToken extracts the access token from a logged request.
func (e RequestEntry) BearerToken() string {
	header := e.Headers.Get("Authorization")
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return header[len("bearer "):]
	}
	return ""
}
