/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package client enables Go developers to connect to deployed business
// networks, access their registries and submit transactions.
package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/client/registry"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/client")

// BusinessNetworkConnection is a connection to a deployed business network.
// It owns one transport connection and one authenticated security context at
// a time. Instances are not safe for overlapping Connect/Disconnect calls;
// callers must serialize lifecycle operations against in-flight requests.
type BusinessNetworkConnection struct {
	connectionManager connector.ConnectionManager
	connection        connector.Connection
	securityContext   connector.SecurityContext
	definition        *bnd.BusinessNetworkDefinition
}

// New returns a disconnected BusinessNetworkConnection using the given
// connection manager to resolve connection profiles.
func New(connectionManager connector.ConnectionManager) *BusinessNetworkConnection {
	return &BusinessNetworkConnection{connectionManager: connectionManager}
}

// Connect opens a connection to a business network, authenticates, pings the
// runtime and downloads the business network definition.
//  Parameters:
//  profile is the connection profile selecting and configuring the connector.
//  networkID is the identifier of the deployed business network.
//  enrollmentID and enrollmentSecret are the credentials to authenticate with.
//
//  Returns:
//  The deserialized business network definition.
func (c *BusinessNetworkConnection) Connect(ctx context.Context, profile *connector.Profile, networkID, enrollmentID, enrollmentSecret string) (*bnd.BusinessNetworkDefinition, error) {
	if profile == nil {
		return nil, errors.New("connection profile not specified")
	}
	if networkID == "" {
		return nil, errors.New("business network identifier not specified")
	}
	if c.connection != nil {
		return nil, errors.Errorf("already connected to business network %s", c.definition.Name())
	}

	logger.Debugf("connecting to business network %s using profile %s", networkID, profile.Name)
	connection, err := c.connectionManager.Connect(ctx, profile, networkID)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to connect to business network")
	}

	definition, sec, err := c.handshake(ctx, connection, enrollmentID, enrollmentSecret)
	if err != nil {
		if discErr := connection.Disconnect(); discErr != nil {
			logger.Warnf("failed to disconnect after connect error: %s", discErr)
		}
		return nil, err
	}

	c.connection = connection
	c.securityContext = sec
	c.definition = definition
	return definition, nil
}

func (c *BusinessNetworkConnection) handshake(ctx context.Context, connection connector.Connection, enrollmentID, enrollmentSecret string) (*bnd.BusinessNetworkDefinition, connector.SecurityContext, error) {
	sec, err := connection.Login(ctx, enrollmentID, enrollmentSecret)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "login failed")
	}
	if _, err := connection.Ping(ctx, sec); err != nil {
		return nil, nil, errors.WithMessage(err, "ping failed")
	}
	payload, err := connection.QueryChainCode(ctx, sec, "getBusinessNetwork", []string{})
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to retrieve business network definition")
	}
	definition, err := bnd.FromBase64(payload)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to read business network definition")
	}
	return definition, sec, nil
}

// Disconnect releases the connection. Disconnecting a connection that was
// never connected, or disconnecting twice, is a no-op.
func (c *BusinessNetworkConnection) Disconnect() error {
	if c.connection == nil {
		return nil
	}
	connection := c.connection
	c.connection = nil
	c.securityContext = nil
	c.definition = nil
	return connection.Disconnect()
}

// Definition returns the business network definition downloaded on connect,
// or nil when disconnected.
func (c *BusinessNetworkConnection) Definition() *bnd.BusinessNetworkDefinition {
	return c.definition
}

func (c *BusinessNetworkConnection) securityCheck() error {
	if c.securityContext == nil {
		return errors.New("not connected to a business network; a valid security context is required")
	}
	return nil
}

func (c *BusinessNetworkConnection) registryProvider() registry.Provider {
	return registry.Provider{
		Connection:   c.connection,
		Security:     c.securityContext,
		ModelManager: c.definition.ModelManager(),
		Factory:      c.definition.Factory(),
		Serializer:   c.definition.Serializer(),
	}
}

// GetAllAssetRegistries returns every asset registry in the business network.
func (c *BusinessNetworkConnection) GetAllAssetRegistries(ctx context.Context) ([]*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.GetAllRegistries(ctx, c.registryProvider(), registry.AssetType)
}

// GetAssetRegistry returns the asset registry with the given identifier.
func (c *BusinessNetworkConnection) GetAssetRegistry(ctx context.Context, id string) (*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.GetRegistry(ctx, c.registryProvider(), registry.AssetType, id)
}

// ExistsAssetRegistry reports whether the asset registry with the given
// identifier exists.
func (c *BusinessNetworkConnection) ExistsAssetRegistry(ctx context.Context, id string) (bool, error) {
	if err := c.securityCheck(); err != nil {
		return false, err
	}
	return registry.ExistsRegistry(ctx, c.registryProvider(), registry.AssetType, id)
}

// AddAssetRegistry creates an asset registry.
func (c *BusinessNetworkConnection) AddAssetRegistry(ctx context.Context, id, name string) (*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.AddRegistry(ctx, c.registryProvider(), registry.AssetType, id, name)
}

// GetAllParticipantRegistries returns every participant registry in the
// business network.
func (c *BusinessNetworkConnection) GetAllParticipantRegistries(ctx context.Context) ([]*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.GetAllRegistries(ctx, c.registryProvider(), registry.ParticipantType)
}

// GetParticipantRegistry returns the participant registry with the given
// identifier.
func (c *BusinessNetworkConnection) GetParticipantRegistry(ctx context.Context, id string) (*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.GetRegistry(ctx, c.registryProvider(), registry.ParticipantType, id)
}

// ExistsParticipantRegistry reports whether the participant registry with the
// given identifier exists.
func (c *BusinessNetworkConnection) ExistsParticipantRegistry(ctx context.Context, id string) (bool, error) {
	if err := c.securityCheck(); err != nil {
		return false, err
	}
	return registry.ExistsRegistry(ctx, c.registryProvider(), registry.ParticipantType, id)
}

// AddParticipantRegistry creates a participant registry.
func (c *BusinessNetworkConnection) AddParticipantRegistry(ctx context.Context, id, name string) (*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return registry.AddRegistry(ctx, c.registryProvider(), registry.ParticipantType, id, name)
}

// GetTransactionRegistry returns the sole default transaction registry.
func (c *BusinessNetworkConnection) GetTransactionRegistry(ctx context.Context) (*registry.Registry, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	registries, err := registry.GetAllRegistries(ctx, c.registryProvider(), registry.TransactionType)
	if err != nil {
		return nil, err
	}
	for _, reg := range registries {
		if reg.ID() == registry.DefaultRegistryID {
			return reg, nil
		}
	}
	return nil, errors.New("failed to find the default transaction registry")
}

// SubmitTransaction submits a transaction for processing by the business
// network. A missing transaction identifier is generated and a missing
// timestamp is set to the current time before submission.
func (c *BusinessNetworkConnection) SubmitTransaction(ctx context.Context, transaction *bnd.Resource) error {
	if transaction == nil {
		return errors.New("transaction not specified")
	}
	if transaction.Declaration().Kind != bnd.TransactionKind {
		return errors.Errorf("%s is not a transaction", transaction.FullyQualifiedType())
	}
	if err := c.securityCheck(); err != nil {
		return err
	}
	txRegistry, err := c.GetTransactionRegistry(ctx)
	if err != nil {
		return err
	}
	if transaction.Identifier() == "" {
		transaction.SetIdentifier(uuid.NewString())
	}
	if transaction.Timestamp().IsZero() {
		transaction.SetTimestamp(time.Now())
	}
	data, err := c.definition.Serializer().ToJSON(transaction)
	if err != nil {
		return err
	}
	logger.Debugf("submitting transaction %s", transaction.FullyQualifiedIdentifier())
	return c.connection.InvokeChainCode(ctx, c.securityContext, "submitTransaction", []string{txRegistry.ID(), string(data)})
}

// Ping checks that the business network runtime is reachable and returns its
// response.
func (c *BusinessNetworkConnection) Ping(ctx context.Context) (*connector.PingResponse, error) {
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	return c.connection.Ping(ctx, c.securityContext)
}

// IssueIdentity issues a new identity bound to a participant.
//  Parameters:
//  participant is the participant resource, or its fully-qualified identifier
//  as a string.
//  userID is the user identifier for the new identity.
//  opts carry connector specific identity options.
//
//  Returns:
//  The created identity with its enrollment secret.
func (c *BusinessNetworkConnection) IssueIdentity(ctx context.Context, participant interface{}, userID string, opts connector.IdentityOptions) (*connector.Identity, error) {
	if participant == nil {
		return nil, errors.New("participant not specified")
	}
	if userID == "" {
		return nil, errors.New("userID not specified")
	}
	var participantID string
	switch p := participant.(type) {
	case *bnd.Resource:
		if p == nil {
			return nil, errors.New("participant not specified")
		}
		participantID = p.FullyQualifiedIdentifier()
	case string:
		if p == "" {
			return nil, errors.New("participant not specified")
		}
		participantID = p
	default:
		return nil, errors.Errorf("participant must be a resource or an identifier string, not %T", participant)
	}
	if err := c.securityCheck(); err != nil {
		return nil, err
	}
	identity, err := c.connection.CreateIdentity(ctx, c.securityContext, userID, opts)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create identity")
	}
	err = c.connection.InvokeChainCode(ctx, c.securityContext, "addParticipantIdentity", []string{participantID, identity.UserID})
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// RevokeIdentity revokes an identity so it can no longer access the business
// network. The identity's credentials are not destroyed.
func (c *BusinessNetworkConnection) RevokeIdentity(ctx context.Context, identityID string) error {
	if identityID == "" {
		return errors.New("identity not specified")
	}
	if err := c.securityCheck(); err != nil {
		return err
	}
	return c.connection.InvokeChainCode(ctx, c.securityContext, "removeIdentity", []string{identityID})
}
