/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocks provides mock connector implementations for tests.
package mocks

import (
	"context"

	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// MockSecurityContext is a mock authenticated session.
type MockSecurityContext struct {
	ID string
}

// EnrollmentID returns the mock identity.
func (s *MockSecurityContext) EnrollmentID() string {
	return s.ID
}

// ChainCodeCall records one query or invoke issued to the mock connection.
type ChainCodeCall struct {
	Fcn  string
	Args []string
}

// MockConnection is a settable mock implementation of connector.Connection.
// Responses are configured per chaincode function; every call is recorded.
type MockConnection struct {
	LoginErr          error
	PingResponse      *connector.PingResponse
	PingErr           error
	QueryResponses    map[string][]byte
	QueryErr          error
	InvokeErr         error
	Identity          *connector.Identity
	CreateIdentityErr error
	DisconnectErr     error

	Queries         []ChainCodeCall
	Invokes         []ChainCodeCall
	DisconnectCalls int
}

// NewMockConnection returns a mock connection with empty defaults.
func NewMockConnection() *MockConnection {
	return &MockConnection{
		PingResponse:   &connector.PingResponse{Version: "0.16.0"},
		QueryResponses: make(map[string][]byte),
		Identity:       &connector.Identity{UserID: "user1", UserSecret: "s3cret"},
	}
}

// Login returns a mock security context for the enrollment ID.
func (c *MockConnection) Login(ctx context.Context, enrollmentID, enrollmentSecret string) (connector.SecurityContext, error) {
	if c.LoginErr != nil {
		return nil, c.LoginErr
	}
	return &MockSecurityContext{ID: enrollmentID}, nil
}

// Ping returns the configured ping response.
func (c *MockConnection) Ping(ctx context.Context, sec connector.SecurityContext) (*connector.PingResponse, error) {
	if c.PingErr != nil {
		return nil, c.PingErr
	}
	return c.PingResponse, nil
}

// QueryChainCode records the call and returns the response configured for fcn.
func (c *MockConnection) QueryChainCode(ctx context.Context, sec connector.SecurityContext, fcn string, args []string) ([]byte, error) {
	c.Queries = append(c.Queries, ChainCodeCall{Fcn: fcn, Args: args})
	if c.QueryErr != nil {
		return nil, c.QueryErr
	}
	payload, ok := c.QueryResponses[fcn]
	if !ok {
		return nil, errors.Errorf("no mock response for chaincode function %s", fcn)
	}
	return payload, nil
}

// InvokeChainCode records the call.
func (c *MockConnection) InvokeChainCode(ctx context.Context, sec connector.SecurityContext, fcn string, args []string) error {
	c.Invokes = append(c.Invokes, ChainCodeCall{Fcn: fcn, Args: args})
	return c.InvokeErr
}

// CreateIdentity returns the configured identity.
func (c *MockConnection) CreateIdentity(ctx context.Context, sec connector.SecurityContext, userID string, opts connector.IdentityOptions) (*connector.Identity, error) {
	if c.CreateIdentityErr != nil {
		return nil, c.CreateIdentityErr
	}
	return c.Identity, nil
}

// Disconnect counts disconnects.
func (c *MockConnection) Disconnect() error {
	c.DisconnectCalls++
	return c.DisconnectErr
}

// MockConnectionManager hands out a fixed connection.
type MockConnectionManager struct {
	Connection *MockConnection
	ConnectErr error

	ConnectCalls int
	LastProfile  *connector.Profile
	LastNetwork  string
}

// NewMockConnectionManager returns a manager serving the given connection.
func NewMockConnectionManager(conn *MockConnection) *MockConnectionManager {
	return &MockConnectionManager{Connection: conn}
}

// Connect returns the configured connection.
func (m *MockConnectionManager) Connect(ctx context.Context, profile *connector.Profile, networkID string) (connector.Connection, error) {
	m.ConnectCalls++
	m.LastProfile = profile
	m.LastNetwork = networkID
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	return m.Connection, nil
}
