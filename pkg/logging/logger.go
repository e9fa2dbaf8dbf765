/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging provides a module-keyed leveled logger for the SDK.
// Each package creates its own logger with NewLogger and a module name;
// levels are controlled per module with SetLevel.
package logging

import (
	"sync"
)

var mutex sync.RWMutex
var moduleLevels = moduleLeveled{}
var customLogger Leveled

// Logger is the logger instance handed out to SDK packages.
type Logger struct {
	deflogger Leveled
	module    string
}

// NewLogger returns a Logger keyed by the given module name.
func NewLogger(module string) *Logger {
	return &Logger{deflogger: getDefaultLogger(module), module: module}
}

// SetCustomLogger installs a custom logger which takes over output for all
// module loggers, already created and future. It is recommended to install
// custom loggers before any logging takes place.
func SetCustomLogger(logger Leveled) {
	mutex.Lock()
	customLogger = logger
	mutex.Unlock()
}

// SetLevel sets the log level for the given module.
func SetLevel(level Level, module string) {
	moduleLevels.SetLevel(level, module)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return moduleLevels.GetLevel(module)
}

// IsEnabledFor returns true if the given module logs at the given level.
func IsEnabledFor(level Level, module string) bool {
	return moduleLevels.IsEnabledFor(level, module)
}

func (l *Logger) target() Leveled {
	mutex.RLock()
	defer mutex.RUnlock()
	if customLogger != nil {
		return customLogger
	}
	return l.deflogger
}

// Fatal logs at CRITICAL and exits.
func (l *Logger) Fatal(args ...interface{}) {
	l.target().Fatal(args...)
}

// Fatalf logs formatted at CRITICAL and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.target().Fatalf(format, args...)
}

// Panic logs at CRITICAL and panics.
func (l *Logger) Panic(args ...interface{}) {
	l.target().Panic(args...)
}

// Panicf logs formatted at CRITICAL and panics.
func (l *Logger) Panicf(format string, args ...interface{}) {
	l.target().Panicf(format, args...)
}

// Debug logs at DEBUG.
func (l *Logger) Debug(args ...interface{}) {
	if IsEnabledFor(DEBUG, l.module) {
		l.target().Debug(args...)
	}
}

// Debugf logs formatted at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if IsEnabledFor(DEBUG, l.module) {
		l.target().Debugf(format, args...)
	}
}

// Info logs at INFO.
func (l *Logger) Info(args ...interface{}) {
	if IsEnabledFor(INFO, l.module) {
		l.target().Info(args...)
	}
}

// Infof logs formatted at INFO.
func (l *Logger) Infof(format string, args ...interface{}) {
	if IsEnabledFor(INFO, l.module) {
		l.target().Infof(format, args...)
	}
}

// Warn logs at WARNING.
func (l *Logger) Warn(args ...interface{}) {
	if IsEnabledFor(WARNING, l.module) {
		l.target().Warn(args...)
	}
}

// Warnf logs formatted at WARNING.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if IsEnabledFor(WARNING, l.module) {
		l.target().Warnf(format, args...)
	}
}

// Error logs at ERROR.
func (l *Logger) Error(args ...interface{}) {
	if IsEnabledFor(ERROR, l.module) {
		l.target().Error(args...)
	}
}

// Errorf logs formatted at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if IsEnabledFor(ERROR, l.module) {
		l.target().Errorf(format, args...)
	}
}
