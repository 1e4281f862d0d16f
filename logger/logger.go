package logger

import (
	"log"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

var LoggerEnabled = true

type DefaultLogger struct {
	name string
}

func NewDefaultLogger(name string) *DefaultLogger {
	return &DefaultLogger{name: name}
}

func (d *DefaultLogger) Debug(format string, args ...any) {
	d.printf("DEBUG", format, args...)
}

func (d *DefaultLogger) Info(format string, args ...any) {
	d.printf("INFO", format, args...)
}

func (d *DefaultLogger) Error(format string, args ...any) {
	d.printf("ERROR", format, args...)
}

func (d *DefaultLogger) printf(level, format string, args ...any) {
	if LoggerEnabled {
		log.Printf("["+level+"] "+d.name+" | "+format+"\n", args...)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
