/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embedded_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/bnd/bndtest"
	"github.com/hyperledger/composer-sdk-go/pkg/client"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/embedded"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/profile"
)

const networkID = "basic-sample-network"

func deployRuntime(t *testing.T) *embedded.Runtime {
	t.Helper()
	definition, err := bndtest.SampleDefinition()
	require.NoError(t, err)
	runtime, err := embedded.NewRuntime("")
	require.NoError(t, err)
	t.Cleanup(func() { runtime.Close() })
	require.NoError(t, runtime.Deploy(context.Background(), definition))
	return runtime
}

func connect(t *testing.T, runtime *embedded.Runtime) (*client.BusinessNetworkConnection, *bnd.BusinessNetworkDefinition) {
	t.Helper()
	bnc := client.New(runtimeManager{runtime})
	definition, err := bnc.Connect(context.Background(),
		&connector.Profile{Name: "test", Type: embedded.ProfileType},
		networkID, embedded.AdminUserID, embedded.AdminSecret)
	require.NoError(t, err)
	t.Cleanup(func() { bnc.Disconnect() })
	return bnc, definition
}

// runtimeManager connects straight to an already deployed runtime instead of
// going through the shared runtime table, so each test gets isolated state.
type runtimeManager struct {
	runtime *embedded.Runtime
}

func (m runtimeManager) Connect(ctx context.Context, p *connector.Profile, networkID string) (connector.Connection, error) {
	return m.runtime.Connect(networkID), nil
}

func TestConnectReturnsDeployedDefinition(t *testing.T) {
	runtime := deployRuntime(t)
	_, definition := connect(t, runtime)

	assert.Equal(t, "basic-sample-network@0.2.6", definition.Identifier())
	assert.True(t, definition.ModelManager().HasType(bndtest.Namespace+".SampleAsset"))
}

func TestLoginRejectsBadSecret(t *testing.T) {
	runtime := deployRuntime(t)
	bnc := client.New(runtimeManager{runtime})

	_, err := bnc.Connect(context.Background(),
		&connector.Profile{Name: "test", Type: embedded.ProfileType},
		networkID, embedded.AdminUserID, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid enrollment secret")
}

func TestDefaultRegistriesCreatedOnDeploy(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, _ := connect(t, runtime)
	ctx := context.Background()

	assetRegistries, err := bnc.GetAllAssetRegistries(ctx)
	require.NoError(t, err)
	require.Len(t, assetRegistries, 1)
	assert.Equal(t, bndtest.Namespace+".SampleAsset", assetRegistries[0].ID())

	participantRegistries, err := bnc.GetAllParticipantRegistries(ctx)
	require.NoError(t, err)
	require.Len(t, participantRegistries, 1)

	txRegistry, err := bnc.GetTransactionRegistry(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", txRegistry.ID())
}

func TestAssetRegistryRoundTrip(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, definition := connect(t, runtime)
	ctx := context.Background()

	reg, err := bnc.GetAssetRegistry(ctx, bndtest.Namespace+".SampleAsset")
	require.NoError(t, err)

	asset, err := definition.Factory().NewResource(bndtest.Namespace, "SampleAsset", "asset1")
	require.NoError(t, err)
	asset.SetProperty("owner", "alice")
	asset.SetProperty("value", "100")
	require.NoError(t, reg.Add(ctx, asset))

	exists, err := reg.Exists(ctx, "asset1")
	require.NoError(t, err)
	assert.True(t, exists)

	fetched, err := reg.Get(ctx, "asset1")
	require.NoError(t, err)
	owner, _ := fetched.GetProperty("owner")
	assert.Equal(t, "alice", owner)

	asset.SetProperty("value", "200")
	require.NoError(t, reg.Update(ctx, asset))
	fetched, err = reg.Get(ctx, "asset1")
	require.NoError(t, err)
	value, _ := fetched.GetProperty("value")
	assert.Equal(t, "200", value)

	require.NoError(t, reg.Remove(ctx, "asset1"))
	exists, err = reg.Exists(ctx, "asset1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = reg.Get(ctx, "asset1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestAddRegistry(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, _ := connect(t, runtime)
	ctx := context.Background()

	created, err := bnc.AddAssetRegistry(ctx, "custom", "Custom registry")
	require.NoError(t, err)
	assert.Equal(t, "custom", created.ID())

	exists, err := bnc.ExistsAssetRegistry(ctx, "custom")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = bnc.AddAssetRegistry(ctx, "custom", "Custom registry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSubmitTransactionRecordedInDefaultRegistry(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, definition := connect(t, runtime)
	ctx := context.Background()

	tx, err := definition.Factory().NewTransaction(bndtest.Namespace, "SampleTransaction")
	require.NoError(t, err)
	tx.SetProperty("asset", "asset1")
	tx.SetProperty("newValue", "300")
	require.NoError(t, bnc.SubmitTransaction(ctx, tx))

	txRegistry, err := bnc.GetTransactionRegistry(ctx)
	require.NoError(t, err)
	recorded, err := txRegistry.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, tx.Identifier(), recorded[0].Identifier())
	assert.False(t, recorded[0].Timestamp().IsZero())
}

func TestQueryFiltersResources(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, definition := connect(t, runtime)
	ctx := context.Background()

	reg, err := bnc.GetAssetRegistry(ctx, bndtest.Namespace+".SampleAsset")
	require.NoError(t, err)
	for _, owner := range []struct{ id, owner string }{
		{"asset1", "alice"},
		{"asset2", "bob"},
		{"asset3", "alice"},
	} {
		asset, err := definition.Factory().NewResource(bndtest.Namespace, "SampleAsset", owner.id)
		require.NoError(t, err)
		asset.SetProperty("owner", owner.owner)
		require.NoError(t, reg.Add(ctx, asset))
	}

	matches, err := reg.Query(ctx, `{"where":[{"field":"owner","op":"eq","value":"alice"}]}`)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "asset1", matches[0].Identifier())
	assert.Equal(t, "asset3", matches[1].Identifier())

	_, err = reg.Query(ctx, `{"where":[{"field":"owner","op":"matches","value":"a"}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported query operator")
}

func TestIssueAndRevokeIdentity(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, definition := connect(t, runtime)
	ctx := context.Background()

	preg, err := bnc.GetParticipantRegistry(ctx, bndtest.Namespace+".SampleParticipant")
	require.NoError(t, err)
	alice, err := definition.Factory().NewResource(bndtest.Namespace, "SampleParticipant", "alice@acme.org")
	require.NoError(t, err)
	alice.SetProperty("firstName", "Alice")
	alice.SetProperty("lastName", "Archer")
	require.NoError(t, preg.Add(ctx, alice))

	identity, err := bnc.IssueIdentity(ctx, alice, "alice-id", connector.IdentityOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, identity.UserSecret)

	aliceConn := client.New(runtimeManager{runtime})
	_, err = aliceConn.Connect(context.Background(),
		&connector.Profile{Name: "test", Type: embedded.ProfileType},
		networkID, identity.UserID, identity.UserSecret)
	require.NoError(t, err)

	ping, err := aliceConn.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, embedded.RuntimeVersion, ping.Version)
	assert.Equal(t, alice.FullyQualifiedIdentifier(), ping.Participant)
	require.NoError(t, aliceConn.Disconnect())

	require.NoError(t, bnc.RevokeIdentity(ctx, identity.UserID))
	_, err = client.New(runtimeManager{runtime}).Connect(context.Background(),
		&connector.Profile{Name: "test", Type: embedded.ProfileType},
		networkID, identity.UserID, identity.UserSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has been revoked")
}

func TestIssuedIdentityCannotIssue(t *testing.T) {
	runtime := deployRuntime(t)
	bnc, definition := connect(t, runtime)
	ctx := context.Background()

	preg, err := bnc.GetParticipantRegistry(ctx, bndtest.Namespace+".SampleParticipant")
	require.NoError(t, err)
	bob, err := definition.Factory().NewResource(bndtest.Namespace, "SampleParticipant", "bob@acme.org")
	require.NoError(t, err)
	bob.SetProperty("firstName", "Bob")
	bob.SetProperty("lastName", "Baker")
	require.NoError(t, preg.Add(ctx, bob))

	identity, err := bnc.IssueIdentity(ctx, bob, "bob-id", connector.IdentityOptions{})
	require.NoError(t, err)

	bobConn := client.New(runtimeManager{runtime})
	_, err = bobConn.Connect(context.Background(),
		&connector.Profile{Name: "test", Type: embedded.ProfileType},
		networkID, identity.UserID, identity.UserSecret)
	require.NoError(t, err)
	defer bobConn.Disconnect()

	_, err = bobConn.IssueIdentity(ctx, bob, "eve-id", connector.IdentityOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not permitted to issue")
}

func TestSharedRuntimeKeyedByProfile(t *testing.T) {
	first, err := embedded.SharedRuntime(&connector.Profile{Name: "shared-a", Type: embedded.ProfileType})
	require.NoError(t, err)
	again, err := embedded.SharedRuntime(&connector.Profile{Name: "shared-a", Type: embedded.ProfileType})
	require.NoError(t, err)
	assert.Same(t, first, again)

	other, err := embedded.SharedRuntime(&connector.Profile{Name: "shared-b", Type: embedded.ProfileType})
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestSharedRuntimeKeyedByDataSource(t *testing.T) {
	dataSource := filepath.Join(t.TempDir(), "state.db")

	// loaded profiles carry lowercased option keys; both spellings must
	// resolve to the same runtime
	first, err := embedded.SharedRuntime(&connector.Profile{
		Name: "store-a", Type: embedded.ProfileType,
		Options: map[string]interface{}{"dataSource": dataSource},
	})
	require.NoError(t, err)
	again, err := embedded.SharedRuntime(&connector.Profile{
		Name: "store-b", Type: embedded.ProfileType,
		Options: map[string]interface{}{"datasource": dataSource},
	})
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestProfileManagerDispatchesToEmbedded(t *testing.T) {
	manager, err := profile.NewManager(t.TempDir())
	require.NoError(t, err)

	definition, err := bndtest.SampleDefinition()
	require.NoError(t, err)
	runtime, err := embedded.SharedRuntime(&connector.Profile{Name: "dispatch", Type: embedded.ProfileType})
	require.NoError(t, err)
	require.NoError(t, runtime.Deploy(context.Background(), definition))

	bnc := client.New(manager)
	_, err = bnc.Connect(context.Background(),
		&connector.Profile{Name: "dispatch", Type: embedded.ProfileType},
		networkID, embedded.AdminUserID, embedded.AdminSecret)
	require.NoError(t, err)
	require.NoError(t, bnc.Disconnect())
}
