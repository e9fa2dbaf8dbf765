/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/mocks"
)

func init() {
	RegisterConnector("test", func(ctx context.Context, profile *connector.Profile, networkID string) (connector.Connection, error) {
		return mocks.NewMockConnection(), nil
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	err = manager.Save(&connector.Profile{
		Name: "dev",
		Type: "test",
		Options: map[string]interface{}{
			"channel": "composerchannel",
		},
	})
	require.NoError(t, err)

	profile, err := manager.Load("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", profile.Name)
	assert.Equal(t, "test", profile.Type)
	assert.Equal(t, "composerchannel", profile.Options["channel"])
}

func TestLoadPreservesOptions(t *testing.T) {
	store := t.TempDir()
	dir := filepath.Join(store, "persistent")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := "name: persistent\ntype: test\ndataSource: /var/lib/composer/state.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "connection.yaml"), []byte(doc), 0o644))

	manager, err := NewManager(store)
	require.NoError(t, err)
	profile, err := manager.Load("persistent")
	require.NoError(t, err)

	// config loading lowercases keys; Option lookup must still find them
	value, ok := profile.Option("dataSource")
	require.True(t, ok)
	assert.Equal(t, "/var/lib/composer/state.db", value)
}

func TestLoadMissingProfile(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = manager.Load("nosuch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load connection profile nosuch")
}

func TestListAndDelete(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, manager.Save(&connector.Profile{Name: "b", Type: "test"}))
	require.NoError(t, manager.Save(&connector.Profile{Name: "a", Type: "test"}))

	names, err := manager.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, manager.Delete("a"))
	names, err = manager.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestConnectUnknownType(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = manager.Connect(context.Background(), &connector.Profile{Name: "p", Type: "nosuch"}, "network")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown connector type "nosuch"`)
}

func TestConnectNamed(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, manager.Save(&connector.Profile{Name: "dev", Type: "test"}))

	conn, err := manager.ConnectNamed(context.Background(), "dev", "network")
	require.NoError(t, err)
	assert.NotNil(t, conn)
}
