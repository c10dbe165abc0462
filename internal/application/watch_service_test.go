package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnupipe/vnupipe/internal/domain"
)

type fakeWatcher struct {
	batches [][]string
	err     error
	exts    []string
}

func (w *fakeWatcher) Watch(_ context.Context, _ string, extensions []string, _ ...string) (<-chan []string, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.exts = extensions
	ch := make(chan []string, len(w.batches))
	for _, b := range w.batches {
		ch <- b
	}
	close(ch)
	return ch, nil
}

func TestWatch_ValidatesEachBatch(t *testing.T) {
	dir := writeSite(t)
	runner := &pathRunner{failing: map[string]string{"about.html": "bad"}}
	svc := newTestService(runner, domain.ProjectConfig{}, &memHistory{}, &memCache{}, nil)
	watcher := &fakeWatcher{batches: [][]string{
		{filepath.Join(dir, "index.html")},
		{filepath.Join(dir, "about.html"), filepath.Join(dir, "docs/guide.htm")},
	}}

	var reports []*domain.ValidationReport
	err := NewWatchService(svc, watcher, memConfig{}).Watch(context.Background(), dir, dir, ValidateRequest{},
		func(r *domain.ValidationReport, err error) {
			require.NoError(t, err)
			reports = append(reports, r)
		})
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, domain.StatusPass, reports[0].Status)
	assert.Equal(t, domain.StatusFail, reports[1].Status)
	assert.Equal(t, []string{"about.html", "docs/guide.htm"}, reports[1].FilesChecked)
	assert.Equal(t, domain.DefaultExtensions, watcher.exts)
}

func TestWatch_SkipsVanishedFiles(t *testing.T) {
	dir := writeSite(t)
	runner := &pathRunner{}
	svc := newTestService(runner, domain.ProjectConfig{}, &memHistory{}, &memCache{}, nil)
	watcher := &fakeWatcher{batches: [][]string{
		{filepath.Join(dir, ".#index.html"), filepath.Join(dir, "index.html")},
	}}

	var reports []*domain.ValidationReport
	err := NewWatchService(svc, watcher, memConfig{}).Watch(context.Background(), dir, dir, ValidateRequest{},
		func(r *domain.ValidationReport, err error) {
			require.NoError(t, err)
			reports = append(reports, r)
		})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	report := reports[0]
	assert.Equal(t, domain.StatusPass, report.Status)
	assert.Equal(t, []string{"index.html"}, report.FilesChecked)
	require.Len(t, runner.calls, 1)

	statuses := map[string]string{}
	for _, r := range report.Results {
		statuses[r.Path] = r.Status
	}
	assert.Equal(t, domain.FileSkipped, statuses[".#index.html"])
	assert.Equal(t, domain.FileValid, statuses["index.html"])
}

func TestWatch_WatcherError(t *testing.T) {
	svc := newTestService(&pathRunner{}, domain.ProjectConfig{}, &memHistory{}, &memCache{}, nil)
	watcher := &fakeWatcher{err: errors.New("too many open files")}

	err := NewWatchService(svc, watcher, memConfig{}).Watch(context.Background(), ".", ".", ValidateRequest{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many open files")
}
