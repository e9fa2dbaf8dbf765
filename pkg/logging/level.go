/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"strings"
	"sync"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// Level defines all available log levels for logging messages.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// ErrInvalidLogLevel is used when an invalid log level has been used.
var ErrInvalidLogLevel = errors.New("logger: invalid log level")

var levelNames = []string{
	"CRITICAL",
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
}

// LogLevel returns the log level from a string representation.
func LogLevel(level string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return Level(i), nil
		}
	}
	return ERROR, ErrInvalidLogLevel
}

func (l Level) String() string {
	if l < CRITICAL || l > DEBUG {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// moduleLeveled tracks the active log level per module.
type moduleLeveled struct {
	sync.RWMutex
	levels map[string]Level
}

// GetLevel returns the log level for the given module, defaulting to INFO.
func (l *moduleLeveled) GetLevel(module string) Level {
	l.RLock()
	defer l.RUnlock()
	level, exists := l.levels[module]
	if !exists {
		level, exists = l.levels[""]
		if !exists {
			level = INFO
		}
	}
	return level
}

// SetLevel sets the log level for the given module.
func (l *moduleLeveled) SetLevel(level Level, module string) {
	l.Lock()
	defer l.Unlock()
	if l.levels == nil {
		l.levels = make(map[string]Level)
	}
	l.levels[module] = level
}

// IsEnabledFor returns true if logging is enabled for the given module at the
// given level.
func (l *moduleLeveled) IsEnabledFor(level Level, module string) bool {
	return level <= l.GetLevel(module)
}
