/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"
	"log"
	"os"
)

const logPrefixFormatter = " [%s] "

func getDefaultLogger(module string) Leveled {
	l := log.New(os.Stderr, fmt.Sprintf(logPrefixFormatter, module), log.Ldate|log.Ltime|log.LUTC)
	return &defaultLogger{logger: l}
}

// defaultLogger is the stderr logger used when no custom logger is installed.
type defaultLogger struct {
	logger *log.Logger
}

func (l *defaultLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(append([]interface{}{levelTag(CRITICAL)}, args...)...)
}

func (l *defaultLogger) Fatalf(format string, args ...interface{}) {
	l.logger.Fatalf(levelTag(CRITICAL)+format, args...)
}

func (l *defaultLogger) Panic(args ...interface{}) {
	l.logger.Panic(append([]interface{}{levelTag(CRITICAL)}, args...)...)
}

func (l *defaultLogger) Panicf(format string, args ...interface{}) {
	l.logger.Panicf(levelTag(CRITICAL)+format, args...)
}

func (l *defaultLogger) Debug(args ...interface{}) {
	l.print(DEBUG, args...)
}

func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.printf(DEBUG, format, args...)
}

func (l *defaultLogger) Info(args ...interface{}) {
	l.print(INFO, args...)
}

func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.printf(INFO, format, args...)
}

func (l *defaultLogger) Warn(args ...interface{}) {
	l.print(WARNING, args...)
}

func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.printf(WARNING, format, args...)
}

func (l *defaultLogger) Error(args ...interface{}) {
	l.print(ERROR, args...)
}

func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.printf(ERROR, format, args...)
}

func (l *defaultLogger) print(level Level, args ...interface{}) {
	l.logger.Print(append([]interface{}{levelTag(level)}, args...)...)
}

func (l *defaultLogger) printf(level Level, format string, args ...interface{}) {
	l.logger.Printf(levelTag(level)+format, args...)
}

func levelTag(level Level) string {
	return "UTC " + level.String() + " -> "
}
