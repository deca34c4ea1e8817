// Package testutil provides testing utilities for the collection API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockMet is a configurable mock of the Met collection API.
//
// Objects, department listings and search results are served from
// in-memory tables; SetResponse and SetHandler override a single path.
type MockMet struct {
	server *httptest.Server
	mu     sync.RWMutex

	handlers    map[string]func(w http.ResponseWriter, r *http.Request)
	objects     map[int]string
	departments map[int][]int
	search      []int
	objectDelay time.Duration

	// Tracking
	RequestCount      int
	ConditionalCount  int
	ObjectRequests    int
	LastRequestHeader http.Header
	SearchQueries     []url.Values
}

// NewMockMet creates a new mock collection API server.
func NewMockMet() *MockMet {
	mock := &MockMet{
		handlers:    make(map[string]func(w http.ResponseWriter, r *http.Request)),
		objects:     make(map[int]string),
		departments: make(map[int][]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.ConditionalCount++
		}
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		mock.route(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockMet) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockMet) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockMet) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.ConditionalCount = 0
	m.ObjectRequests = 0
	m.LastRequestHeader = nil
	m.SearchQueries = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockMet) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockMet) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// AddObject registers a raw object body under id.
func (m *MockMet) AddObject(id int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[id] = body
}

// SetDepartment registers the object IDs listed for a department.
func (m *MockMet) SetDepartment(departmentID int, ids []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.departments[departmentID] = ids
}

// SetSearchResults sets the IDs returned by every /search request.
func (m *MockMet) SetSearchResults(ids []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = ids
}

// SetObjectDelay delays every object response.
func (m *MockMet) SetObjectDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objectDelay = d
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockMet) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockMet) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConditionalCount
}

// GetLastRequestHeader returns the headers of the most recent request.
func (m *MockMet) GetLastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestHeader.Clone()
}

// GetObjectRequests returns the number of /objects/{id} requests.
func (m *MockMet) GetObjectRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ObjectRequests
}

// GetSearchQueries returns a copy of the query strings received by /search.
func (m *MockMet) GetSearchQueries() []url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]url.Values(nil), m.SearchQueries...)
}

func (m *MockMet) route(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/objects":
		dept, _ := strconv.Atoi(r.URL.Query().Get("departmentIds"))
		m.mu.RLock()
		ids := m.departments[dept]
		m.mu.RUnlock()
		writeIDs(w, ids)

	case strings.HasPrefix(r.URL.Path, "/objects/"):
		m.serveObject(w, r)

	case r.URL.Path == "/search":
		m.mu.Lock()
		m.SearchQueries = append(m.SearchQueries, r.URL.Query())
		ids := m.search
		m.mu.Unlock()
		writeIDs(w, ids)

	case r.URL.Path == "/departments":
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"departments":[{"departmentId":11,"displayName":"European Paintings"},{"departmentId":13,"displayName":"Greek and Roman Art"}]}`))

	default:
		http.NotFound(w, r)
	}
}

func (m *MockMet) serveObject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/objects/"))

	m.mu.Lock()
	m.ObjectRequests++
	body, ok := m.objects[id]
	delay := m.objectDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
	}

	if err != nil || !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"ObjectID not found"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// writeIDs writes a listing body. An empty listing is encoded as null,
// which is what the upstream returns for searches without results.
func writeIDs(w http.ResponseWriter, ids []int) {
	w.WriteHeader(http.StatusOK)
	if len(ids) == 0 {
		w.Write([]byte(`{"total":0,"objectIDs":null}`))
		return
	}
	body, _ := json.Marshal(map[string]interface{}{
		"total":     len(ids),
		"objectIDs": ids,
	})
	w.Write(body)
}

// ObjectJSON builds a minimal object body. An empty image yields an object
// without primaryImage, which the normalizer drops.
func ObjectJSON(id int, title, image string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"objectID":        id,
		"title":           title,
		"primaryImage":    image,
		"objectName":      "Vase",
		"culture":         "Greek",
		"objectBeginDate": -500,
		"objectDate":      "ca. 500 BC",
		"city":            "",
		"country":         "Greece",
	})
	return string(body)
}

// ImageURL returns a deterministic image URL for id.
func ImageURL(id int) string {
	return fmt.Sprintf("https://images.example.org/%d.jpg", id)
}

// NewHealthyResponse creates a standard 200 OK response with validators.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"ETag":         `"test-etag-123"`,
			"Expires":      time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
			"Content-Type": "application/json",
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"message":"Too Many Requests"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message":"Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewConditionalHandler creates a handler that answers 304 when the
// request carries etag. Stale max-age forces revalidation on every request.
func NewConditionalHandler(etag string, data string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "max-age=0")

		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(data))
	}
}
