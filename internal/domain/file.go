package domain

import "io"

// File is a unit of work flowing through the validation stage.
//
// A nil Contents and nil Stream make a null file, which is forwarded
// untouched. A non-nil Stream marks a streaming source, which the stage
// rejects. History holds the paths the file was loaded or derived from; all
// of them are handed to the validator.
type File struct {
	Contents []byte
	Stream   io.Reader
	History  []string
}

// NewFile returns a buffered file loaded from path.
func NewFile(path string, contents []byte) *File {
	if contents == nil {
		contents = []byte{}
	}
	return &File{Contents: contents, History: []string{path}}
}

func (f *File) IsNull() bool { return f.Contents == nil && f.Stream == nil }

func (f *File) IsStream() bool { return f.Stream != nil }

// Path returns the path the file was originally loaded from.
func (f *File) Path() string {
	if len(f.History) == 0 {
		return ""
	}
	return f.History[0]
}
