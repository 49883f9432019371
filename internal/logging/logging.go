// Package logging unifies the Logger/DefaultLogger pattern repeated
// across the teacher's imap_core.Session, imap_core/indexer, and
// cmd/imap.go into one structured logger backed by
// github.com/sirupsen/logrus instead of the teacher's stdlib log
// calls, matching what the rest of the pack (flashmob-go-guerrilla)
// uses logrus for.
package logging

import "github.com/sirupsen/logrus"

// Logger is the structured logging interface injected into
// SessionController and the store (never a package
// global, per spec.md §9 "Global configuration").
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
}

type entryLogger struct {
	entry *logrus.Entry
}

// New wraps a *logrus.Logger into the Logger interface, with base
// fields attached to every record it emits.
func New(base *logrus.Logger, fields logrus.Fields) Logger {
	if base == nil {
		base = logrus.New()
	}
	return &entryLogger{entry: base.WithFields(fields)}
}

// NewDefault returns a Logger over a fresh text-formatted logrus
// instance, for callers that don't need to share a base logger.
func NewDefault() Logger {
	l := logrus.New()
	return &entryLogger{entry: logrus.NewEntry(l)}
}

func (e *entryLogger) Debug(msg string, kv ...interface{}) { e.entry.WithFields(pairs(kv)).Debug(msg) }
func (e *entryLogger) Info(msg string, kv ...interface{})  { e.entry.WithFields(pairs(kv)).Info(msg) }
func (e *entryLogger) Warn(msg string, kv ...interface{})  { e.entry.WithFields(pairs(kv)).Warn(msg) }
func (e *entryLogger) Error(msg string, kv ...interface{}) { e.entry.WithFields(pairs(kv)).Error(msg) }

// pairs turns a flat key, value, key, value... slice into
// logrus.Fields, tolerating an odd trailing element.
func pairs(kv []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}
