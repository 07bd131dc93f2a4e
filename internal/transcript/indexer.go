// Package transcript records each chat exchange in Elasticsearch for audit
// and later conversation analysis. Indexing is best effort: a failure is
// logged and never surfaces to the user.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "foodops-assistant/internal/common/errors"
	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/models"
)

const defaultIndex = "chat-transcripts"

// Entry is one user message and the assistant's reply to it.
type Entry struct {
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Intent    string    `json:"intent"`
	Section   *int      `json:"section,omitempty"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

type Indexer struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
	logger  logger.Logger
}

// NewIndexer builds a transcript indexer. A nil client returns a nil
// Indexer, which disables recording entirely.
func NewIndexer(client *elasticsearch.Client, index string, timeout time.Duration, log logger.Logger) *Indexer {
	if client == nil {
		return nil
	}
	if index == "" {
		index = defaultIndex
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Indexer{
		client:  client,
		index:   index,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "transcript"}),
	}
}

// Enabled reports whether recording is configured. Safe on a nil receiver.
func (ix *Indexer) Enabled() bool {
	return ix != nil
}

// Record indexes one exchange. It is meant to run off the request path
// (go ix.Record(...)) and carries its own timeout, so the caller's context
// cancelling at end of request does not abort the write.
func (ix *Indexer) Record(entry *Entry) {
	if ix == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ix.timeout)
	defer cancel()

	if err := ix.indexEntry(ctx, entry); err != nil {
		stdErr := apperrors.NewTranscriptIndexFailedError(err)
		ix.logger.Warn("transcript index failed", map[string]interface{}{
			"requestId": entry.RequestID,
			"userId":    entry.UserID,
			"errorCode": string(stdErr.Code),
			"error":     stdErr.Details,
		})
	}
}

func (ix *Indexer) indexEntry(ctx context.Context, entry *Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      ix.index,
		DocumentID: entry.RequestID,
		Body:       strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, ix.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index failed: %s", res.String())
	}
	return nil
}

// SectionValue converts a SectionRef to the optional form the entry stores.
func SectionValue(section models.SectionRef) *int {
	if !section.Valid {
		return nil
	}
	n := section.Number
	return &n
}
