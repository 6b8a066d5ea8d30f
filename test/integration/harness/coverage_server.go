package harness

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeCoverageServer answers directory coverage queries from canned listings.
// Listings are keyed by directory prefix; unknown prefixes return no data.
type FakeCoverageServer struct {
	listings map[string][][]any
	mu       sync.Mutex
	queries  atomic.Int64
	server   *httptest.Server
	status   int
}

type fakeQuery struct {
	Where struct {
		And []map[string]map[string]string `json:"and"`
	} `json:"where"`
}

// NewFakeCoverageServer starts a server that is closed when the test completes.
func NewFakeCoverageServer(tb testing.TB) *FakeCoverageServer {
	tb.Helper()

	f := &FakeCoverageServer{
		listings: make(map[string][][]any),
		status:   http.StatusOK,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	tb.Cleanup(f.server.Close)
	return f
}

// URL returns the base URL to pass as the endpoint.
func (f *FakeCoverageServer) URL() string {
	return f.server.URL
}

// SetListing registers the [name, isDirectory, covered, uncovered] rows for a prefix.
func (f *FakeCoverageServer) SetListing(prefix string, rows ...[]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings[prefix] = rows
}

// FailWith makes every query answer with the given HTTP status.
func (f *FakeCoverageServer) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Queries returns how many queries were answered.
func (f *FakeCoverageServer) Queries() int {
	return int(f.queries.Load())
}

func (f *FakeCoverageServer) handle(w http.ResponseWriter, r *http.Request) {
	f.queries.Add(1)

	f.mu.Lock()
	status := f.status
	f.mu.Unlock()
	if status != http.StatusOK {
		http.Error(w, "service unavailable", status)
		return
	}

	var q fakeQuery
	if r.URL.Path != "/query" || json.NewDecoder(r.Body).Decode(&q) != nil {
		http.Error(w, "bad query", http.StatusBadRequest)
		return
	}

	prefix := ""
	for _, clause := range q.Where.And {
		if p, ok := clause["prefix"]; ok {
			prefix = p["source.file.name"]
		}
	}

	f.mu.Lock()
	rows := f.listings[prefix]
	f.mu.Unlock()
	if rows == nil {
		rows = [][]any{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": rows})
}
