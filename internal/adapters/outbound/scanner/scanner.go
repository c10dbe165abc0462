package scanner

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vnupipe/vnupipe/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".vnupipe":     true,
	"bin":          true,
	"testdata":     true,
}

// FileScanner implements domain.FileScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects the files under root whose extension is in extensions.
// Excluded paths match either a directory name or a path relative to root.
func (s *FileScanner) Scan(root string, extensions []string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[filepath.ToSlash(strings.TrimSuffix(p, "/"))] = true
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absPath {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relPath] {
				return filepath.SkipDir
			}
			return nil
		}

		if extraSkip[relPath] {
			return nil
		}

		if exts[strings.ToLower(filepath.Ext(d.Name()))] {
			result.Files = append(result.Files, relPath)
		}

		return nil
	})

	slices.Sort(result.Files)
	return result, err
}
