package domain

import "fmt"

// FailPolicy decides which classified records fail a file.
type FailPolicy string

const (
	// FailOnError fails on error and non-document-error records.
	FailOnError FailPolicy = "error"
	// FailOnInfo fails on any validator message.
	FailOnInfo FailPolicy = "info"
	// FailOnNone never fails a file because of its messages.
	FailOnNone FailPolicy = "none"
)

// ValidFailPolicies enumerates the recognized policies.
var ValidFailPolicies = []FailPolicy{FailOnError, FailOnInfo, FailOnNone}

// ParseFailPolicy parses s; an empty string selects FailOnError.
func ParseFailPolicy(s string) (FailPolicy, error) {
	if s == "" {
		return FailOnError, nil
	}
	for _, p := range ValidFailPolicies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown fail policy %q (valid: error, info, none)", s)
}

// Fails reports whether records fail under the policy.
func (p FailPolicy) Fails(records []Record) bool {
	for _, r := range records {
		switch r.Severity {
		case SeveritySuccess:
			continue
		case SeverityInfo:
			if p == FailOnInfo {
				return true
			}
		default:
			if p != FailOnNone {
				return true
			}
		}
	}
	return false
}

// Outcome is the classified result of validating one file.
type Outcome struct {
	Path    string   `json:"path"`
	Format  Format   `json:"format"`
	Passed  bool     `json:"passed"`
	Records []Record `json:"records,omitempty"`
	Stderr  string   `json:"stderr,omitempty"`
	Err     error    `json:"-"`
}

// Counts tallies the records by severity.
func (o *Outcome) Counts() SeverityCounts {
	var c SeverityCounts
	c.Add(o.Records)
	return c
}

// SeverityCounts tallies records by severity.
type SeverityCounts struct {
	Errors            int `json:"errors"`
	Infos             int `json:"infos"`
	NonDocumentErrors int `json:"non_document_errors"`
}

func (c *SeverityCounts) Add(records []Record) {
	for _, r := range records {
		switch r.Severity {
		case SeverityError:
			c.Errors++
		case SeverityInfo:
			c.Infos++
		case SeverityNonDocumentError:
			c.NonDocumentErrors++
		}
	}
}
