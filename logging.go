package autopas

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is the only piece of process-wide state the core relies on, and
// even that is injected through the façade rather than reached for
// globally: the AutoPas façade holds it as a field and is the only
// component that logs; the tuner, containers, and traversals do not.
//
// WithPhase returns a derived Logger that tags every subsequent line with
// a tuning-phase identifier, so log lines emitted over the lifetime of one
// tuning phase (which can span many iterations and configuration samples)
// read as a single thread without every call site repeating the phase ID
// in its format string.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	WithPhase(phaseID string) Logger
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// loggerState is the mutex-guarded state shared by a DefaultLogger and
// every logger WithPhase derives from it: the sinks and the debug flag are
// process-wide, so toggling SetDebug on any member of the family affects
// all of them.
type loggerState struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	err   *log.Logger
}

// DefaultLogger writes to stdout/stderr through the standard library
// log.Logger. A DefaultLogger value is cheap to derive: prefix and phaseID
// are carried by value while the sinks and debug flag live in the shared
// state, so WithPhase is just a struct copy with one field changed.
type DefaultLogger struct {
	state   *loggerState
	prefix  string
	phaseID string
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		prefix: prefix,
		state: &loggerState{
			debug: debug,
			out:   log.New(os.Stdout, "", flags),
			err:   log.New(os.Stderr, "", flags),
		},
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.state.mu.Lock()
	l.state.debug = enabled
	l.state.mu.Unlock()
}

// WithPhase returns a logger that tags every line it emits with phaseID,
// sharing this logger's prefix, sinks, and debug flag.
func (l *DefaultLogger) WithPhase(phaseID string) Logger {
	return &DefaultLogger{state: l.state, prefix: l.prefix, phaseID: phaseID}
}

func (l *DefaultLogger) tagf(level, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.prefix != "" && l.phaseID != "":
		return fmt.Sprintf("[%s][phase %s] %s: %s", l.prefix, l.phaseID, level, msg)
	case l.phaseID != "":
		return fmt.Sprintf("[phase %s] %s: %s", l.phaseID, level, msg)
	case l.prefix != "":
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	default:
		return fmt.Sprintf("%s: %s", level, msg)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.state.out.Print(l.tagf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.state.out.Print(l.tagf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.state.err.Print(l.tagf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.state.err.Print(l.tagf("ERROR", format, args...))
}

// nopLogger discards everything; useful in tests and for embedders that
// don't want the core touching stdout/stderr at all.
type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) WithPhase(phaseID string) Logger   { return n }
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
