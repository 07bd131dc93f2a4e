package transcript

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeTransport captures index requests instead of talking to a cluster.
type fakeTransport struct {
	requests []*http.Request
	bodies   []string
	status   int
}

func (ft *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ft.requests = append(ft.requests, req)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		ft.bodies = append(ft.bodies, string(b))
	} else {
		ft.bodies = append(ft.bodies, "")
	}

	status := ft.status
	if status == 0 {
		status = http.StatusCreated
	}

	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(`{"result":"created"}`)),
	}, nil
}

func newTestIndexer(t *testing.T, ft *fakeTransport) *Indexer {
	t.Helper()

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: ft,
	})
	require.NoError(t, err)

	return NewIndexer(client, "chat-transcripts", 2*time.Second, logger.NewTestLogger(t))
}

func testEntry() *Entry {
	section := 1
	return &Entry{
		RequestID: "req-123",
		UserID:    "user-1",
		Message:   "Show expiry summary for Section 1",
		Intent:    "view_expiry_summary",
		Section:   &section,
		Reply:     "Expiry summary for Section 1: ...",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

// ==========================
// Recording Tests
// ==========================

func TestRecord_IndexesEntry(t *testing.T) {
	ft := &fakeTransport{}
	ix := newTestIndexer(t, ft)

	ix.Record(testEntry())

	require.Len(t, ft.requests, 1)
	req := ft.requests[0]
	assert.Equal(t, "PUT", req.Method)
	assert.Equal(t, "/chat-transcripts/_doc/req-123", req.URL.Path)

	body := ft.bodies[0]
	assert.Contains(t, body, `"user_id":"user-1"`)
	assert.Contains(t, body, `"intent":"view_expiry_summary"`)
	assert.Contains(t, body, `"section":1`)
	assert.Contains(t, body, `"message":"Show expiry summary for Section 1"`)
}

func TestRecord_OmitsAbsentSection(t *testing.T) {
	ft := &fakeTransport{}
	ix := newTestIndexer(t, ft)

	entry := testEntry()
	entry.Section = nil
	ix.Record(entry)

	require.Len(t, ft.bodies, 1)
	assert.NotContains(t, ft.bodies[0], `"section"`)
}

func TestRecord_ServerErrorDoesNotPanic(t *testing.T) {
	ft := &fakeTransport{status: http.StatusServiceUnavailable}
	ix := newTestIndexer(t, ft)

	// Best effort: the failure is logged, nothing propagates.
	ix.Record(testEntry())

	assert.Len(t, ft.requests, 1)
}

func TestRecord_NilIndexerIsNoOp(t *testing.T) {
	var ix *Indexer

	assert.False(t, ix.Enabled())
	ix.Record(testEntry())
}

// ==========================
// Helper Tests
// ==========================

func TestSectionValue(t *testing.T) {
	assert.Nil(t, SectionValue(models.NoSection()))

	got := SectionValue(models.Section(4))
	require.NotNil(t, got)
	assert.Equal(t, 4, *got)
}
