package domain

import "fmt"

// Severity classifies a validation record.
type Severity string

const (
	// SeveritySuccess is synthesized locally when a document produced no messages.
	SeveritySuccess          Severity = "success"
	SeverityError            Severity = "error"
	SeverityInfo             Severity = "info"
	SeverityNonDocumentError Severity = "non-document-error"
)

// SeverityFromType maps a validator message type onto a Severity. Types the
// validator is not documented to emit are treated as non-document errors.
func SeverityFromType(t string) Severity {
	switch Severity(t) {
	case SeverityError:
		return SeverityError
	case SeverityInfo:
		return SeverityInfo
	default:
		return SeverityNonDocumentError
	}
}

// Message is one issue reported by the validator in JSON mode.
type Message struct {
	Type         string `json:"type"`
	SubType      string `json:"subType,omitempty"`
	URL          string `json:"url,omitempty"`
	FirstLine    int    `json:"firstLine,omitempty"`
	LastLine     int    `json:"lastLine,omitempty"`
	FirstColumn  int    `json:"firstColumn,omitempty"`
	LastColumn   int    `json:"lastColumn,omitempty"`
	Message      string `json:"message"`
	Extract      string `json:"extract,omitempty"`
	HiliteStart  int    `json:"hiliteStart,omitempty"`
	HiliteLength int    `json:"hiliteLength,omitempty"`
}

// Envelope is the JSON document the validator writes to stderr.
type Envelope struct {
	Messages []Message `json:"messages"`
}

// Meta carries the fields attached to a log record.
type Meta struct {
	Path        string `json:"path,omitempty"`
	URL         string `json:"url,omitempty"`
	LastLine    int    `json:"last_line,omitempty"`
	FirstColumn int    `json:"first_column,omitempty"`
	Extract     string `json:"extract,omitempty"`
}

// Record is a severity-tagged log record produced for one file.
type Record struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Meta
}

// RecordFromMessage converts a validator message into a record.
func RecordFromMessage(m Message) Record {
	return Record{
		Severity: SeverityFromType(m.Type),
		Message:  m.Message,
		Meta: Meta{
			URL:         m.URL,
			LastLine:    m.LastLine,
			FirstColumn: m.FirstColumn,
			Extract:     m.Extract,
		},
	}
}

// Location renders "line:column" for display.
func (r Record) Location() string {
	return fmt.Sprintf("%d:%d", r.LastLine, r.FirstColumn)
}
