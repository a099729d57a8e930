// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logs implements the small leveled, subsystem-tagged logging
// backend used by the logger package. It is independent of any particular
// output sink; a Backend is built from a set of BackendWriters and handed
// out per-subsystem Loggers that gate output by Level.
package logs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level is a logging level.
type Level uint8

// Level constants, ordered from most to least verbose.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrs = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// String returns the three-letter tag for the level.
func (l Level) String() string {
	if int(l) < len(levelStrs) {
		return levelStrs[l]
	}
	return "UNK"
}

// LevelFromString parses a level name (trace/debug/info/warn/error/critical/off)
// into a Level. It returns false if the string is not a recognized level.
func LevelFromString(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "critical":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	}
	return LevelInfo, false
}

// BackendWriter is a single output sink of a Backend, limited to a minimum
// and maximum Level (inclusive). NewAllLevelsBackendWriter and
// NewErrorBackendWriter build the two common cases: everything, and
// error-and-above.
type BackendWriter struct {
	w        io.Writer
	minLevel Level
	maxLevel Level
}

// NewAllLevelsBackendWriter returns a BackendWriter that accepts every level.
func NewAllLevelsBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelTrace, maxLevel: LevelCritical}
}

// NewErrorBackendWriter returns a BackendWriter that accepts only
// LevelError and LevelCritical records.
func NewErrorBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelError, maxLevel: LevelCritical}
}

func (bw *BackendWriter) accepts(level Level) bool {
	return level >= bw.minLevel && level <= bw.maxLevel
}

// Backend multiplexes formatted log records out to its BackendWriters and
// mints per-subsystem Loggers.
type Backend struct {
	writers []*BackendWriter
}

// NewBackend constructs a Backend from the given writers.
func NewBackend(writers []*BackendWriter) *Backend {
	return &Backend{writers: writers}
}

// Logger returns a new Logger tagged with the given subsystem, defaulting to
// LevelInfo.
func (b *Backend) Logger(subsystemTag string) Logger {
	return Logger{
		backend: b,
		tag:     subsystemTag,
		level:   &levelBox{level: LevelInfo},
	}
}

// levelBox exists so copies of a Logger share the same mutable level.
type levelBox struct {
	mu    sync.RWMutex
	level Level
}

func (lb *levelBox) get() Level {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return lb.level
}

func (lb *levelBox) set(l Level) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.level = l
}

// Logger writes leveled, subsystem-tagged records through its Backend.
type Logger struct {
	backend *Backend
	tag     string
	level   *levelBox
}

// SetLevel changes the minimum level this Logger will emit.
func (l Logger) SetLevel(level Level) {
	l.level.set(level)
}

// Level returns the Logger's current minimum emitted level.
func (l Logger) Level() Level {
	return l.level.get()
}

func (l Logger) write(level Level, s string) {
	if level < l.level.get() {
		return
	}
	line := fmt.Sprintf("%s [%s] %s %s\n",
		time.Now().UTC().Format("2006-01-02 15:04:05.000"), level, l.tag, s)
	for _, bw := range l.backend.writers {
		if bw.accepts(level) {
			_, _ = io.WriteString(bw.w, line)
		}
	}
}

// Tracef writes a LevelTrace record.
func (l Logger) Tracef(format string, args ...interface{}) { l.write(LevelTrace, fmt.Sprintf(format, args...)) }

// Debugf writes a LevelDebug record.
func (l Logger) Debugf(format string, args ...interface{}) { l.write(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof writes a LevelInfo record.
func (l Logger) Infof(format string, args ...interface{}) { l.write(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf writes a LevelWarn record.
func (l Logger) Warnf(format string, args ...interface{}) { l.write(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf writes a LevelError record.
func (l Logger) Errorf(format string, args ...interface{}) { l.write(LevelError, fmt.Sprintf(format, args...)) }

// Criticalf writes a LevelCritical record.
func (l Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, fmt.Sprintf(format, args...))
}
