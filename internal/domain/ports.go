package domain

import (
	"context"
	"time"
)

// Logger receives every record the stage produces.
type Logger interface {
	Log(severity Severity, message string, meta Meta)
}

// Invocation is one fully assembled validator command.
type Invocation struct {
	Java string   `json:"java"`
	Argv []string `json:"argv"`
	// Timeout bounds the run; zero waits indefinitely.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// RunResult is the captured output of a validator process.
type RunResult struct {
	Stdout string
	Stderr string
}

// ValidatorRunner executes a validator invocation. The returned error is the
// process error: a non-zero exit, a spawn failure or a timeout. Output
// captured before the failure is still returned.
type ValidatorRunner interface {
	Run(ctx context.Context, inv Invocation) (RunResult, error)
}

// ValidatorSettings locates the validator and the JVM that runs it.
type ValidatorSettings struct {
	Java    string        `json:"java"`
	Jar     string        `json:"jar"`
	JVMArgs []string      `json:"jvm_args,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// DefaultJVMArgs are passed to java ahead of -jar.
var DefaultJVMArgs = []string{"-Xss1024k"}

// DefaultValidatorSettings returns settings that resolve java and vnu.jar
// from the environment.
func DefaultValidatorSettings() ValidatorSettings {
	return ValidatorSettings{
		Java: "java",
		Jar:  "vnu.jar",
	}
}

// ScanResult lists the files found under RootPath, relative to it.
type ScanResult struct {
	RootPath string
	Files    []string
}

// FileScanner expands a directory into the files matching extensions.
type FileScanner interface {
	Scan(root string, extensions []string, excludePaths ...string) (*ScanResult, error)
}

// FileWatcher reports batches of created or modified files under root whose
// extension is in extensions. The channel closes when ctx is done.
type FileWatcher interface {
	Watch(ctx context.Context, root string, extensions []string, excludePaths ...string) (<-chan []string, error)
}

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInfo exposes repository state used to select and label runs.
// ChangedFiles returns slash paths relative to projectPath, which may be a
// subdirectory of the repository.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}

// RunHistory persists validation run summaries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string, limit int) ([]RunEntry, error)
}

// CacheStore persists the hashes of files that passed validation.
type CacheStore interface {
	Load(projectPath string) (*ValidationCache, error)
	Save(cache *ValidationCache) error
	Invalidate(projectPath string) error
}
