// Package log provides structured logging for opdeck.
// Entries are formatted with level, category and key=value fields, written
// to an optional debug file (tea.LogToFile) and published on a broker so the
// console status bar can show the latest diagnostic line.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/opdeck/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatConfig   Category = "config"   // Configuration loading/saving
	CatHardware Category = "hw"       // Driver open/close and probing
	CatLink     Category = "link"     // Control-event link rebinding
	CatRegistry Category = "registry" // Unit registration and panel lifecycle
	CatSession  Category = "session"  // Run/pause/stop transitions
	CatConsole  Category = "console"  // Orchestrator actions
	CatJournal  Category = "journal"  // Session journal persistence
	CatWatcher  Category = "watcher"  // Device hot-plug notices
	CatUI       Category = "ui"       // UI component updates
	CatTrace    Category = "trace"    // Tracing provider
)

const bufferSize = 500

// Entry is one formatted log record kept in the in-memory ring.
type Entry struct {
	Time     time.Time
	Level    Level
	Category Category
	Message  string
	Line     string
}

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []Entry
	broker   *pubsub.Broker[Entry]
}

var defaultLogger = newLogger(nil)

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelInfo,
		broker:   pubsub.NewBroker[Entry](),
	}
}

// Init opens path for appending and routes log output there at debug level.
// Returns a cleanup function that closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	attach(f)
	return func() { detach(f) }, nil
}

// InitWithTeaLog uses tea.LogToFile so Bubble Tea's own diagnostics land in
// the same file.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	attach(f)
	return func() { detach(f) }, nil
}

func attach(f *os.File) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.file = f
	defaultLogger.writer = f
	defaultLogger.minLevel = LevelDebug
}

func detach(f *os.File) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	if defaultLogger.file == f {
		defaultLogger.file = nil
		defaultLogger.writer = nil
	}
	_ = f.Close()
}

// SetOutput redirects formatted lines to w (nil discards them).
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defaultLogger.writer = w
	defaultLogger.mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	defaultLogger.mu.Lock()
	defaultLogger.enabled = enabled
	defaultLogger.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.minLevel = level
	defaultLogger.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

// Format renders an entry line without writing it.
// Format: 2025-12-06T10:45:00 [ERROR] [registry] message key=value key2=value2
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}

	now := time.Now()
	entry := Entry{
		Time:     now,
		Level:    level,
		Category: cat,
		Message:  msg,
		Line:     Format(now, level, cat, msg, fields...),
	}

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry.Line+"\n")
	}

	l.buffer = append(l.buffer, entry)
	if len(l.buffer) > bufferSize {
		l.buffer = l.buffer[len(l.buffer)-bufferSize:]
	}
	l.mu.Unlock()

	// Publish outside the lock; the broker never blocks.
	l.broker.Publish(pubsub.LoggedEvent, entry)
}

// Entries returns buffered entries at or above minLevel, oldest first.
func Entries(minLevel Level) []Entry {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	out := make([]Entry, 0, len(defaultLogger.buffer))
	for _, e := range defaultLogger.buffer {
		if e.Level >= minLevel {
			out = append(out, e)
		}
	}
	return out
}

// ClearBuffer drops all buffered entries.
func ClearBuffer() {
	defaultLogger.mu.Lock()
	defaultLogger.buffer = nil
	defaultLogger.mu.Unlock()
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[Entry]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[Entry]

// NewListener creates a log event listener that lives as long as ctx.
func NewListener(ctx context.Context) *LogListener {
	return pubsub.NewContinuousListener(ctx, defaultLogger.broker)
}
