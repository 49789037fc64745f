package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/handiism/id3-recode/internal/config"
	ioutils "github.com/handiism/id3-recode/internal/io"
	"github.com/handiism/id3-recode/internal/model"
	"github.com/handiism/id3-recode/internal/recode"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Path is the file the event is about, empty for batch-level events.
	Path string
}

// Manager coordinates the conversion of a batch of files.
type Manager struct {
	settings *config.Settings
	driver   *recode.Driver

	files          []string
	results        []model.FileResult
	summary        model.Summary
	totalBytes     int64
	processedBytes int64
	totalFiles     int32
	processedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new conversion Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		onProgress: onProgress,
	}
}

// Initialize expands the input paths into the files to convert.
//
// Directories are walked recursively for the configured extensions; files
// are taken as given. An input that cannot be read is reported and skipped;
// an unreadable entry inside a directory is reported as a warning and the
// rest of the directory is still collected.
// The same file reached through several inputs is converted once.
func (m *Manager) Initialize(ctx context.Context, inputs []string) error {
	driver, err := recode.NewDriver(m.settings.ToDriverOptions())
	if err != nil {
		return err
	}
	m.driver = driver

	seen := make(map[string]bool)
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", input), Level: LevelVerbose, Path: input})
		paths, err := ioutils.FindFiles(ctx, input, m.settings.Extensions, func(path string, err error) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", path, err), Level: LevelWarning, Path: path})
		})
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", input, err), Level: LevelError, Path: input})
			continue
		}

		for _, path := range paths {
			key := path
			if abs, err := filepath.Abs(path); err == nil {
				key = abs
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			m.files = append(m.files, path)
		}
	}

	m.calculateTotals()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d file(s)", m.totalFiles), Level: LevelInfo})
	return nil
}

// Start converts all initialized files.
//
// Files run concurrently up to MaxConcurrentFiles. A file's failure is
// reported and never stops the others. Start returns the context error
// when it was cancelled; files not yet started are then left alone.
func (m *Manager) Start(ctx context.Context) error {
	if m.driver == nil {
		return fmt.Errorf("convert: Start called before Initialize")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentFiles, 1))

	for _, path := range m.files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			m.record(m.driver.ConvertFile(ctx, path))
			return nil // Continue with other files
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Files returns the files found by Initialize.
func (m *Manager) Files() []string {
	return append([]string(nil), m.files...)
}

// GetProgress returns current conversion progress.
func (m *Manager) GetProgress() (processed, total int64, filesProcessed, filesTotal int32) {
	return atomic.LoadInt64(&m.processedBytes), m.totalBytes,
		atomic.LoadInt32(&m.processedFiles), m.totalFiles
}

// Results returns the per-file results sorted by path.
func (m *Manager) Results() []model.FileResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := append([]model.FileResult(nil), m.results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// Summary returns the aggregate of the results recorded so far.
func (m *Manager) Summary() model.Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary
}

func (m *Manager) calculateTotals() {
	m.totalFiles = int32(len(m.files))
	for _, path := range m.files {
		if info, err := os.Stat(path); err == nil {
			m.totalBytes += info.Size()
		}
	}
}

func (m *Manager) record(res model.FileResult) {
	m.mu.Lock()
	m.results = append(m.results, res)
	m.summary.Add(res)
	m.mu.Unlock()

	atomic.AddInt64(&m.processedBytes, res.Size)
	atomic.AddInt32(&m.processedFiles, 1)

	for _, c := range res.Changes {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %q -> %q", c.Field, c.Before, c.After), Level: LevelVerbose, Path: res.Path})
	}
	for _, a := range res.Attempts {
		if a.Err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("'%s' %s", res.Path, a), Level: LevelWarning, Path: res.Path})
		}
	}
	if res.Outcome == model.OutcomeConverted && res.Sanitized > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("'%s' removed %d custom text frame(s)", res.Path, res.Sanitized), Level: LevelWarning, Path: res.Path})
	}

	level := LevelSuccess
	switch res.Outcome {
	case model.OutcomeSkipped:
		level = LevelInfo
	case model.OutcomeFailed:
		level = LevelError
	}
	m.progress(ProgressEvent{Message: res.String(), Level: level, Path: res.Path})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
