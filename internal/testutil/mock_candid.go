// Package testutil provides testing utilities for the grants fetcher.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// PageResponse defines the behavior of the mock server for one page number.
type PageResponse struct {
	StatusCode int
	Body       string
}

// MockCandid is a configurable stand-in for the Candid transactions
// endpoint. Responses are keyed by the "page" query parameter.
type MockCandid struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[string]PageResponse

	// Tracking
	RequestCount int
	LastQuery    url.Values
	LastHeader   http.Header
}

// NewMockCandid creates a new mock Candid server.
func NewMockCandid() *MockCandid {
	mock := &MockCandid{
		pages: make(map[string]PageResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.LastHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		resp, exists := mock.pages[r.URL.Query().Get("page")]
		mock.mu.RUnlock()

		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))

	return mock
}

// URL returns the mock server URL, used as the client's base URL.
func (m *MockCandid) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCandid) Close() {
	m.server.Close()
}

// Reset clears tracking counters and configured pages.
func (m *MockCandid) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
	m.LastHeader = nil
	m.pages = make(map[string]PageResponse)
}

// SetResponse configures the raw response for a page number.
func (m *MockCandid) SetResponse(page int, resp PageResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[fmt.Sprintf("%d", page)] = resp
}

// SetPage configures a successful envelope for a page number built from
// the given row literals.
func (m *MockCandid) SetPage(page int, totalHits, numPages int, rows ...string) {
	m.SetResponse(page, PageResponse{
		StatusCode: http.StatusOK,
		Body:       Envelope(totalHits, numPages, rows...),
	})
}

// SetStatus configures an error status for a page number.
func (m *MockCandid) SetStatus(page, statusCode int) {
	m.SetResponse(page, PageResponse{StatusCode: statusCode})
}

// Requests returns the number of requests made to the server.
func (m *MockCandid) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// Envelope builds a transactions response body with the given rows.
func Envelope(totalHits, numPages int, rows ...string) string {
	return fmt.Sprintf(`{"data": {"rows": [%s], "total_hits": %d, "num_pages": %d}}`,
		strings.Join(rows, ","), totalHits, numPages)
}

// EnvelopeWithoutRows builds a transactions response body whose data field
// omits rows entirely, the zero-results shape.
func EnvelopeWithoutRows(totalHits, numPages int) string {
	return fmt.Sprintf(`{"data": {"total_hits": %d, "num_pages": %d}}`, totalHits, numPages)
}
