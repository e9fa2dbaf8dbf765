/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package embedded implements an in-process connector. Business networks are
// deployed into a SQLite-backed world state and the chaincode engine
// functions run locally, so applications and tests work without a real
// ledger. Connection profiles select this connector with type "embedded".
package embedded

import (
	"context"
	"database/sql"
	"sync"

	"github.com/spf13/cast"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // database/sql driver

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/profile"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/connector")

// ProfileType is the connection profile type served by this connector.
const ProfileType = "embedded"

// RuntimeVersion reported by ping.
const RuntimeVersion = "0.16.0"

// Default admin credentials created on deploy.
const (
	AdminUserID = "admin"
	AdminSecret = "adminpw"
)

const inMemoryDataSource = ":memory:"

// Runtime is an embedded business network runtime: a world state plus the
// engine functions over it. Runtimes are shared by all connections with the
// same data source.
type Runtime struct {
	state *worldState
	db    *sql.DB

	mu          sync.Mutex
	definitions map[string]*bnd.BusinessNetworkDefinition
}

var runtimesMu sync.Mutex
var runtimes = make(map[string]*Runtime)

// NewRuntime opens a runtime over the given SQLite data source. An empty
// data source uses transient in-memory state.
func NewRuntime(dataSource string) (*Runtime, error) {
	if dataSource == "" {
		dataSource = inMemoryDataSource
	}
	db, err := sql.Open("sqlite", dataSource)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open world state %s", dataSource)
	}
	// a single pooled connection keeps in-memory state visible to all users
	db.SetMaxOpenConns(1)
	state, err := newWorldState(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Runtime{
		state:       state,
		db:          db,
		definitions: make(map[string]*bnd.BusinessNetworkDefinition),
	}, nil
}

// SharedRuntime returns the runtime for the given profile, creating it on
// first use. Profiles with a dataSource option share state through that
// database; profiles without one get per-profile in-memory state.
func SharedRuntime(p *connector.Profile) (*Runtime, error) {
	raw, _ := p.Option("dataSource")
	dataSource := cast.ToString(raw)
	key := dataSource
	if key == "" {
		key = "memory:" + p.Name
	}
	runtimesMu.Lock()
	defer runtimesMu.Unlock()
	if rt, ok := runtimes[key]; ok {
		return rt, nil
	}
	rt, err := NewRuntime(dataSource)
	if err != nil {
		return nil, err
	}
	runtimes[key] = rt
	return rt, nil
}

func init() {
	profile.RegisterConnector(ProfileType, func(ctx context.Context, p *connector.Profile, networkID string) (connector.Connection, error) {
		rt, err := SharedRuntime(p)
		if err != nil {
			return nil, err
		}
		return newConnection(rt, networkID), nil
	})
}

// Connect opens a connection to a business network of this runtime.
func (r *Runtime) Connect(networkID string) connector.Connection {
	return newConnection(r, networkID)
}

// Close releases the runtime's world state.
func (r *Runtime) Close() error {
	return r.db.Close()
}

// Deploy installs a business network definition, creates its default
// registries and issues the admin identity.
func (r *Runtime) Deploy(ctx context.Context, definition *bnd.BusinessNetworkDefinition) error {
	if definition == nil {
		return errors.New("business network definition not specified")
	}
	networkID := definition.Name()
	logger.Infof("deploying business network %s", definition.Identifier())

	archive, err := definition.ToBase64()
	if err != nil {
		return err
	}
	if err := r.state.putNetwork(ctx, networkID, string(archive)); err != nil {
		return errors.Wrapf(err, "failed to deploy business network %s", networkID)
	}

	if err := r.state.addRegistry(ctx, networkID, "Transaction", "default", "Default Transaction Registry"); err != nil {
		return err
	}
	for _, decl := range definition.ModelManager().DeclarationsOfKind(bnd.AssetKind) {
		fqn := decl.FullyQualifiedName()
		if err := r.state.addRegistry(ctx, networkID, "Asset", fqn, "Asset registry for "+fqn); err != nil {
			return err
		}
	}
	for _, decl := range definition.ModelManager().DeclarationsOfKind(bnd.ParticipantKind) {
		fqn := decl.FullyQualifiedName()
		if err := r.state.addRegistry(ctx, networkID, "Participant", fqn, "Participant registry for "+fqn); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminSecret), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin secret")
	}
	if err := r.state.addIdentity(ctx, networkID, identityRow{
		UserID:     AdminUserID,
		SecretHash: string(hash),
		Issuer:     true,
	}); err != nil {
		return errors.Wrap(err, "failed to create admin identity")
	}

	r.mu.Lock()
	r.definitions[networkID] = definition
	r.mu.Unlock()
	return nil
}

// definition returns the deployed definition for a network, loading it from
// the world state if this runtime instance has not seen it yet.
func (r *Runtime) definition(ctx context.Context, networkID string) (*bnd.BusinessNetworkDefinition, error) {
	r.mu.Lock()
	if def, ok := r.definitions[networkID]; ok {
		r.mu.Unlock()
		return def, nil
	}
	r.mu.Unlock()

	archive, err := r.state.getNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}
	def, err := bnd.FromBase64([]byte(archive))
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.definitions[networkID] = def
	r.mu.Unlock()
	return def, nil
}
