package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/id3-recode/internal/config"
	"github.com/handiism/id3-recode/internal/convert"
	"github.com/rs/zerolog"
)

// Handler receives progress events.
type Handler = func(convert.ProgressEvent)

// New returns the handler for the given log format.
func New(format string, w io.Writer, verbose bool) (Handler, error) {
	switch format {
	case "", config.LogFormatText:
		return NewTextHandler(w, verbose), nil
	case config.LogFormatJSON:
		return NewJSONHandler(w, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewTextHandler writes one line per event with a styled level prefix.
// Verbose events are dropped unless verbose is set.
func NewTextHandler(w io.Writer, verbose bool) Handler {
	r := lipgloss.NewRenderer(w)
	prefixes := map[convert.ProgressLevel]string{
		convert.LevelError:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("✗ "),
		convert.LevelWarning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")).Render("! "),
		convert.LevelSuccess: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")).Render("✓ "),
		convert.LevelInfo:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")).Render("• "),
	}
	dim := r.NewStyle().Foreground(lipgloss.Color("#6C757D"))

	var mu sync.Mutex
	return func(event convert.ProgressEvent) {
		if event.Level == convert.LevelVerbose && !verbose {
			return
		}

		line := event.Message
		prefix, ok := prefixes[event.Level]
		if !ok {
			prefix = "  "
			line = dim.Render(line)
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, prefix+line)
	}
}

// NewJSONHandler writes one JSON object per event.
//
// Records carry the zerolog level, the progress level as "event", the file
// path when there is one, the message and a timestamp.
func NewJSONHandler(w io.Writer, verbose bool) Handler {
	logger := zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger()

	return func(event convert.ProgressEvent) {
		if event.Level == convert.LevelVerbose && !verbose {
			return
		}

		e := logger.WithLevel(zerologLevel(event.Level)).Str("event", event.Level.String())
		if event.Path != "" {
			e = e.Str("path", event.Path)
		}
		e.Msg(event.Message)
	}
}

func zerologLevel(l convert.ProgressLevel) zerolog.Level {
	switch l {
	case convert.LevelVerbose:
		return zerolog.DebugLevel
	case convert.LevelWarning:
		return zerolog.WarnLevel
	case convert.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
