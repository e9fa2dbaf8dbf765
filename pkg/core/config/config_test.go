/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

const testConfig = `
client:
  organization: org1
  logging:
    level: debug
rest:
  address: ":3000"
`

func TestFromRawLookup(t *testing.T) {
	backend, err := FromRaw([]byte(testConfig), "yaml")()
	require.NoError(t, err)

	value, ok := backend.Lookup("client.organization")
	require.True(t, ok)
	assert.Equal(t, "org1", value)

	value, ok = backend.Lookup("rest.address")
	require.True(t, ok)
	assert.Equal(t, ":3000", value)

	_, ok = backend.Lookup("client.missing")
	assert.False(t, ok)
}

func TestFromRawAppliesLogLevel(t *testing.T) {
	defer logging.SetLevel(logging.INFO, "composer/client")

	_, err := FromRaw([]byte(testConfig), "yaml")()
	require.NoError(t, err)
	assert.Equal(t, logging.DEBUG, logging.GetLevel("composer/client"))
}

func TestFromRawRequiresType(t *testing.T) {
	_, err := FromRaw([]byte(testConfig), "")()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty config type")
}

func TestFromFileRequiresName(t *testing.T) {
	_, err := FromFile("")()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filename is required")
}

func TestUnmarshalKey(t *testing.T) {
	backend, err := FromRaw([]byte(testConfig), "yaml")()
	require.NoError(t, err)

	var rest struct {
		Address string `mapstructure:"address"`
	}
	require.NoError(t, backend.UnmarshalKey("rest", &rest))
	assert.Equal(t, ":3000", rest.Address)
}
