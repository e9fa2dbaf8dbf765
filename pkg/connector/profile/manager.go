/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package profile manages connection profiles. A profile is a YAML or JSON
// document stored in its own directory under the profile store; its type
// field selects the connector used to reach the ledger.
package profile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/connector")

// ConnectorFactory creates a connection for profiles of a registered type.
type ConnectorFactory func(ctx context.Context, profile *connector.Profile, networkID string) (connector.Connection, error)

var factoriesMu sync.RWMutex
var factories = make(map[string]ConnectorFactory)

// RegisterConnector registers a connector factory for a profile type.
// Registering the same type twice panics; connectors register themselves
// from package init functions.
func RegisterConnector(profileType string, factory ConnectorFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, exists := factories[profileType]; exists {
		panic("connector type already registered: " + profileType)
	}
	factories[profileType] = factory
}

func lookupConnector(profileType string) (ConnectorFactory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	factory, ok := factories[profileType]
	return factory, ok
}

const profileFileName = "connection.yaml"

// Manager loads, saves and resolves connection profiles, and implements
// connector.ConnectionManager by dispatching on the profile type.
type Manager struct {
	storePath string
}

// NewManager returns a manager over the given profile store directory.
func NewManager(storePath string) (*Manager, error) {
	if storePath == "" {
		return nil, errors.New("profile store path not specified")
	}
	return &Manager{storePath: storePath}, nil
}

// Load reads the named profile from the store.
func (m *Manager) Load(name string) (*connector.Profile, error) {
	if name == "" {
		return nil, errors.New("profile name not specified")
	}
	v := viper.New()
	v.SetConfigFile(filepath.Join(m.storePath, name, profileFileName))
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to load connection profile %s", name)
	}

	profile := &connector.Profile{}
	if err := mapstructure.Decode(v.AllSettings(), profile); err != nil {
		return nil, errors.Wrapf(err, "invalid connection profile %s", name)
	}
	if profile.Name == "" {
		profile.Name = name
	}
	if profile.Type == "" {
		return nil, errors.Errorf("connection profile %s does not specify a connector type", name)
	}
	return profile, nil
}

// Save writes the profile to the store, creating its directory if needed.
func (m *Manager) Save(profile *connector.Profile) error {
	if profile == nil {
		return errors.New("profile not specified")
	}
	if profile.Name == "" {
		return errors.New("profile name not specified")
	}
	dir := filepath.Join(m.storePath, profile.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create profile directory for %s", profile.Name)
	}
	doc := map[string]interface{}{
		"name": profile.Name,
		"type": profile.Type,
	}
	for key, value := range profile.Options {
		doc[key] = value
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal connection profile %s", profile.Name)
	}
	if err := os.WriteFile(filepath.Join(dir, profileFileName), data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write connection profile %s", profile.Name)
	}
	return nil
}

// List returns the names of all stored profiles.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read profile store")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile from the store.
func (m *Manager) Delete(name string) error {
	if name == "" {
		return errors.New("profile name not specified")
	}
	return os.RemoveAll(filepath.Join(m.storePath, name))
}

// Connect creates a connection to the business network using the connector
// selected by the profile type.
func (m *Manager) Connect(ctx context.Context, profile *connector.Profile, networkID string) (connector.Connection, error) {
	if profile == nil {
		return nil, errors.New("profile not specified")
	}
	factory, ok := lookupConnector(profile.Type)
	if !ok {
		return nil, errors.Errorf("unknown connector type %q in connection profile %s", profile.Type, profile.Name)
	}
	logger.Debugf("connecting with profile %s (type %s)", profile.Name, profile.Type)
	return factory(ctx, profile, networkID)
}

// ConnectNamed loads the named profile and connects with it.
func (m *Manager) ConnectNamed(ctx context.Context, name, networkID string) (connector.Connection, error) {
	profile, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	return m.Connect(ctx, profile, networkID)
}
