// Package logger provides structured JSON logging and run counters for the
// hackradar pipeline.
//
// Log entries are emitted as one JSON object per line with a timestamp, level,
// message, and optional structured fields. Counters track per-run totals such
// as items scraped per source and records dropped during normalization.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields holds structured log fields.
type Fields map[string]interface{}

// Logger writes structured log entries at or above a minimum level.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	out      io.Writer
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// New creates a logger writing to out. Messages below minLevel are discarded.
func New(minLevel Level, out io.Writer) *Logger {
	return &Logger{minLevel: minLevel, out: out}
}

var defaultLogger = New(LevelInfo, os.Stdout)

// SetDefault replaces the package-level logger used by the convenience
// functions.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, marshalErr := json.Marshal(e)
	l.mu.Lock()
	defer l.mu.Unlock()
	if marshalErr != nil {
		fmt.Fprintf(l.out, "[%s] %s: %s\n", e.Timestamp, e.Level, e.Message)
		return
	}
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) { l.log(LevelInfo, message, fields, nil) }

// Warn logs a warning with optional structured fields.
func (l *Logger) Warn(message string, fields Fields) { l.log(LevelWarn, message, fields, nil) }

// Error logs a failure with optional structured fields and the error itself.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using the default logger.

func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }
func Info(message string, fields Fields)  { defaultLogger.Info(message, fields) }
func Warn(message string, fields Fields)  { defaultLogger.Warn(message, fields) }
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Counters tracks named incrementing totals for a single pipeline run.
// All operations are safe for concurrent use.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Add increments a counter by n.
func (c *Counters) Add(name string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += n
}

// Incr increments a counter by 1.
func (c *Counters) Incr(name string) {
	c.Add(name, 1)
}

// Get returns the current value of a counter.
func (c *Counters) Get(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Snapshot returns a copy of all counters as log fields, with names sorted
// for stable output.
func (c *Counters) Snapshot() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(Fields, len(names))
	for _, name := range names {
		fields[name] = c.counts[name]
	}
	return fields
}
