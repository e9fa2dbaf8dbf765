/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) record(level Level, format string, args ...interface{}) {
	r.entries = append(r.entries, level.String()+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Fatal(args ...interface{})                 { r.record(CRITICAL, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Fatalf(format string, args ...interface{}) { r.record(CRITICAL, format, args...) }
func (r *recordingLogger) Panic(args ...interface{})                 { r.record(CRITICAL, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Panicf(format string, args ...interface{}) { r.record(CRITICAL, format, args...) }
func (r *recordingLogger) Debug(args ...interface{})                 { r.record(DEBUG, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Debugf(format string, args ...interface{}) { r.record(DEBUG, format, args...) }
func (r *recordingLogger) Info(args ...interface{})                  { r.record(INFO, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Infof(format string, args ...interface{})  { r.record(INFO, format, args...) }
func (r *recordingLogger) Warn(args ...interface{})                  { r.record(WARNING, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Warnf(format string, args ...interface{})  { r.record(WARNING, format, args...) }
func (r *recordingLogger) Error(args ...interface{})                 { r.record(ERROR, "%s", fmt.Sprint(args...)) }
func (r *recordingLogger) Errorf(format string, args ...interface{}) { r.record(ERROR, format, args...) }

func TestLevelFromString(t *testing.T) {
	level, err := LogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = LogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, WARNING, level)

	_, err = LogLevel("wrong")
	assert.Equal(t, ErrInvalidLogLevel, err)
}

func TestModuleLevelFiltering(t *testing.T) {
	rec := &recordingLogger{}
	SetCustomLogger(rec)
	defer SetCustomLogger(nil)

	logger := NewLogger("composer/test")
	SetLevel(WARNING, "composer/test")

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	logger.Warnf("shown %d", 3)
	logger.Errorf("shown %d", 4)

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "WARNING shown 3", rec.entries[0])
	assert.Equal(t, "ERROR shown 4", rec.entries[1])
}

func TestDefaultLevelIsInfo(t *testing.T) {
	assert.Equal(t, INFO, GetLevel("composer/unconfigured"))
	assert.True(t, IsEnabledFor(INFO, "composer/unconfigured"))
	assert.False(t, IsEnabledFor(DEBUG, "composer/unconfigured"))
}
