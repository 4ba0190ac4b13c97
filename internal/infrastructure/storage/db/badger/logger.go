package dbbadger

import (
	log "github.com/sirupsen/logrus"
)

// Logger adapts logrus to the badger.Logger interface. Badger info and
// debug messages are noisy, so they are logged one level down.
type Logger struct {
	entry *log.Entry
}

// NewLogger ...
func NewLogger() *Logger {
	return &Logger{log.WithField("component", "badger")}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}
