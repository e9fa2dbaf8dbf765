/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package connector defines the interfaces a ledger connector must implement.
// A connector provides the transport between the SDK and a deployed business
// network runtime; the SDK itself never talks to the ledger directly.
package connector

import (
	"context"
	"strings"
)

// SecurityContext is the authenticated session handle returned by
// Connection.Login. Every subsequent ledger operation requires one.
type SecurityContext interface {
	// EnrollmentID returns the identity this context was authenticated as.
	EnrollmentID() string
}

// PingResponse carries the business network runtime's response to a ping.
type PingResponse struct {
	Version     string `json:"version"`
	Participant string `json:"participant,omitempty"`
}

// Identity is an enrollment credential created by a connection.
type Identity struct {
	UserID     string `json:"userID"`
	UserSecret string `json:"userSecret"`
}

// IdentityOptions control identity creation.
type IdentityOptions struct {
	// Issuer grants the new identity the authority to issue further identities.
	Issuer bool
	// Affiliation to assign to the new identity, connector specific.
	Affiliation string
}

// Connection is an opaque session to the underlying ledger transport.
// Connections are created by a ConnectionManager and must be released with
// Disconnect.
type Connection interface {
	// Login authenticates the enrollment credentials and returns the security
	// context required by all other operations.
	Login(ctx context.Context, enrollmentID string, enrollmentSecret string) (SecurityContext, error)

	// Ping checks that the business network runtime is reachable.
	Ping(ctx context.Context, sec SecurityContext) (*PingResponse, error)

	// QueryChainCode evaluates a chaincode function and returns its payload.
	QueryChainCode(ctx context.Context, sec SecurityContext, fcn string, args []string) ([]byte, error)

	// InvokeChainCode submits a chaincode function for commit to the ledger.
	InvokeChainCode(ctx context.Context, sec SecurityContext, fcn string, args []string) error

	// CreateIdentity creates a new enrollment credential.
	CreateIdentity(ctx context.Context, sec SecurityContext, userID string, opts IdentityOptions) (*Identity, error)

	// Disconnect terminates the session. A connection must not be used after
	// Disconnect returns.
	Disconnect() error
}

// Profile describes a named connection profile. The Type selects the
// connector implementation; Options carry connector specific settings.
type Profile struct {
	Name    string                 `mapstructure:"name" yaml:"name"`
	Type    string                 `mapstructure:"type" yaml:"type"`
	Options map[string]interface{} `mapstructure:",remain" yaml:"options,omitempty"`
}

// Option returns the named option. Lookup is case insensitive: profiles
// loaded from configuration files arrive with lowercased keys.
func (p *Profile) Option(name string) (interface{}, bool) {
	if value, ok := p.Options[name]; ok {
		return value, true
	}
	for key, value := range p.Options {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

// ConnectionManager creates connections to business networks from connection
// profiles.
type ConnectionManager interface {
	Connect(ctx context.Context, profile *Profile, networkID string) (Connection, error)
}
