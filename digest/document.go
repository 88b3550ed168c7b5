package digest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harborline/newsdigest/digest/fileutils"
)

// MessageTimeLayout is the layout used for per-message timestamps in the
// output document (ISO-8601, no zone).
const MessageTimeLayout = "2006-01-02T15:04:05"

// WindowTimeLayout is the layout used for the time window bounds.
const WindowTimeLayout = "2006-01-02 15:04:05"

// UnknownWindowBound is emitted for the window bounds when no message
// carries a timestamp.
const UnknownWindowBound = "Unknown"

// Message is one normalized, cleaned message attributed to a source group.
// Created once by extraction and never mutated afterward except for its
// position in the final sort order.
type Message struct {
	// Timestamp is formatted with MessageTimeLayout, or nil when the block
	// carried no parseable timestamp. Serialized as JSON null when nil.
	Timestamp *string `json:"timestamp"`
	Group     string  `json:"group"`
	Text      string  `json:"text"`

	// OriginalLength is the trimmed pre-clean block length in runes.
	// Diagnostic only; not re-validated downstream.
	OriginalLength int `json:"original_length"`
}

// sortKey orders messages by timestamp string; undated messages key as ""
// and therefore sort before all dated ones.
func (m Message) sortKey() string {
	if m.Timestamp == nil {
		return ""
	}
	return *m.Timestamp
}

// TimeWindow is the [earliest, latest] timestamp span across all accepted
// messages. DurationHours is omitted entirely when no message is dated.
type TimeWindow struct {
	Start         string   `json:"start"`
	End           string   `json:"end"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
}

// Metadata summarizes one processing run.
type Metadata struct {
	TotalMessages int        `json:"total_messages"`
	TimeWindow    TimeWindow `json:"time_window"`
	ProcessedAt   string     `json:"processed_at"`
}

// OutputDocument is the root persisted artifact, written once per run.
type OutputDocument struct {
	Metadata Metadata  `json:"metadata"`
	Messages []Message `json:"messages"`
}

// BuildDocument assembles the output document from sorted messages.
// The messages slice is used as-is; callers sort first (see SortMessages).
func BuildDocument(messages []Message, processedAt time.Time) OutputDocument {
	if messages == nil {
		messages = []Message{}
	}
	return OutputDocument{
		Metadata: Metadata{
			TotalMessages: len(messages),
			TimeWindow:    ComputeTimeWindow(messages),
			ProcessedAt:   processedAt.Format(MessageTimeLayout),
		},
		Messages: messages,
	}
}

// SaveDocument writes the output document atomically. One whole-document
// write per run; there is no partial-write recovery to do.
func SaveDocument(path string, doc OutputDocument, pretty bool) error {
	if path == "" {
		return errors.New("SaveDocument: path is empty")
	}
	if doc.Messages == nil {
		doc.Messages = []Message{}
	}
	if err := fileutils.WriteJSONFileAtomic(path, doc, pretty); err != nil {
		return fmt.Errorf("SaveDocument: %w", err)
	}
	return nil
}

// LoadDocument reads a previously written output document.
func LoadDocument(path string) (OutputDocument, error) {
	if path == "" {
		return OutputDocument{}, errors.New("LoadDocument: path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return OutputDocument{}, fmt.Errorf("LoadDocument: read file: %w", err)
	}
	var doc OutputDocument
	if err := jsonAPI.Unmarshal(b, &doc); err != nil {
		return OutputDocument{}, fmt.Errorf("LoadDocument: unmarshal: %w", err)
	}
	return doc, nil
}
