package domain

// RunEntry is one row of the validation history.
type RunEntry struct {
	RunID      string `json:"run_id"`
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Status     string `json:"status"`
	Files      int    `json:"files"`
	Failed     int    `json:"failed"`
	Errors     int    `json:"errors"`
	Infos      int    `json:"infos"`
}
