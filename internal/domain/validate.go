package domain

// Run statuses.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Per-file statuses.
const (
	FileValid   = "valid"
	FileInvalid = "invalid"
	FileSkipped = "skipped"
	FileCached  = "cached"
	FileError   = "error"
)

// ValidationReport summarizes one validation run.
type ValidationReport struct {
	RunID        string         `json:"run_id"`
	Status       string         `json:"status"`
	Format       Format         `json:"format"`
	FailOn       FailPolicy     `json:"fail_on"`
	CommitHash   string         `json:"commit_hash,omitempty"`
	FilesChecked []string       `json:"files_checked"`
	Results      []FileResult   `json:"results"`
	Counts       SeverityCounts `json:"counts"`
	Aborted      bool           `json:"aborted,omitempty"`
}

// FileResult is the per-file entry of a ValidationReport.
type FileResult struct {
	Path    string   `json:"path"`
	Status  string   `json:"status"`
	Records []Record `json:"records,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Failed counts the files that did not pass.
func (r *ValidationReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == FileInvalid || res.Status == FileError {
			n++
		}
	}
	return n
}
