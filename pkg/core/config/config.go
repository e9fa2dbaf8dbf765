/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads SDK configuration documents: connection profiles and
// REST server settings. Documents are YAML or JSON, with environment variable
// overrides under the COMPOSER prefix.
package config

import (
	"bytes"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/config")

var logModules = [...]string{"composer", "composer/client", "composer/registry",
	"composer/config", "composer/connector", "composer/rest"}

const envPrefix = "COMPOSER"

// Backend is a read view over a loaded configuration document.
type Backend interface {
	// Lookup returns the value at the given dotted key and whether it was set.
	Lookup(key string) (interface{}, bool)
	// UnmarshalKey decodes the value at the given dotted key into out.
	UnmarshalKey(key string, out interface{}) error
}

// Provider creates a config backend when invoked.
type Provider func() (Backend, error)

type options struct {
	envPrefix string
}

// Option configures the package.
type Option func(opts *options)

// WithEnvPrefix overrides the prefix for environment variable overrides.
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) {
		opts.envPrefix = prefix
	}
}

// FromFile reads the named config file. The file extension selects the
// format.
func FromFile(name string, opts ...Option) Provider {
	return func() (Backend, error) {
		if name == "" {
			return nil, errors.New("filename is required")
		}
		backend := newBackend(opts...)
		backend.v.SetConfigFile(name)
		if err := backend.v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "loading config file failed: %s", name)
		}
		setLogLevel(backend)
		return backend, nil
	}
}

// FromReader loads configuration from in. configType can be "json" or "yaml".
func FromReader(in io.Reader, configType string, opts ...Option) Provider {
	return func() (Backend, error) {
		if configType == "" {
			return nil, errors.New("empty config type")
		}
		backend := newBackend(opts...)
		backend.v.SetConfigType(configType)
		if err := backend.v.MergeConfig(in); err != nil {
			return nil, errors.Wrap(err, "loading config failed")
		}
		setLogLevel(backend)
		return backend, nil
	}
}

// FromRaw initializes the config from a byte array.
func FromRaw(configBytes []byte, configType string, opts ...Option) Provider {
	return func() (Backend, error) {
		return FromReader(bytes.NewBuffer(configBytes), configType, opts...)()
	}
}

type defBackend struct {
	v *viper.Viper
}

func newBackend(opts ...Option) *defBackend {
	o := options{envPrefix: envPrefix}
	for _, option := range opts {
		option(&o)
	}
	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return &defBackend{v: v}
}

// Lookup gets the config item value by key.
func (b *defBackend) Lookup(key string) (interface{}, bool) {
	value := b.v.Get(key)
	if value == nil {
		return nil, false
	}
	return value, true
}

// UnmarshalKey decodes the config item at key into out.
func (b *defBackend) UnmarshalKey(key string, out interface{}) error {
	return b.v.UnmarshalKey(key, out)
}

// setLogLevel applies client.logging.level to all SDK log modules.
func setLogLevel(backend Backend) {
	raw, ok := backend.Lookup("client.logging.level")
	if !ok {
		return
	}
	levelName, ok := raw.(string)
	if !ok || levelName == "" {
		return
	}
	level, err := logging.LogLevel(levelName)
	if err != nil {
		logger.Warnf("ignoring invalid logging level %q", levelName)
		return
	}
	for _, module := range logModules {
		logging.SetLevel(level, module)
	}
}
