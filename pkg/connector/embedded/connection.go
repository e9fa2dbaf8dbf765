/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embedded

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/bcrypt"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// securityContext is the session handle issued by an embedded connection.
type securityContext struct {
	userID      string
	participant string
}

func (s *securityContext) EnrollmentID() string {
	return s.userID
}

// connection is an embedded implementation of connector.Connection bound to
// one business network of a shared runtime.
type connection struct {
	runtime   *Runtime
	networkID string
	closed    bool
}

func newConnection(runtime *Runtime, networkID string) *connection {
	return &connection{runtime: runtime, networkID: networkID}
}

func (c *connection) check(sec connector.SecurityContext) (*securityContext, error) {
	if c.closed {
		return nil, errors.New("connection is closed")
	}
	if sec == nil {
		return nil, errors.New("security context not specified")
	}
	embeddedSec, ok := sec.(*securityContext)
	if !ok {
		return nil, errors.New("security context was not issued by this connection")
	}
	return embeddedSec, nil
}

// Login verifies the enrollment credentials against the identities of the
// world state.
func (c *connection) Login(ctx context.Context, enrollmentID, enrollmentSecret string) (connector.SecurityContext, error) {
	if c.closed {
		return nil, errors.New("connection is closed")
	}
	if enrollmentID == "" {
		return nil, errors.New("enrollment ID not specified")
	}
	identity, err := c.runtime.state.getIdentity(ctx, c.networkID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if identity.Revoked {
		return nil, errors.Errorf("identity %s has been revoked", enrollmentID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.SecretHash), []byte(enrollmentSecret)); err != nil {
		return nil, errors.Errorf("invalid enrollment secret for identity %s", enrollmentID)
	}
	return &securityContext{userID: identity.UserID, participant: identity.Participant}, nil
}

// Ping confirms the network is deployed.
func (c *connection) Ping(ctx context.Context, sec connector.SecurityContext) (*connector.PingResponse, error) {
	embeddedSec, err := c.check(sec)
	if err != nil {
		return nil, err
	}
	if _, err := c.runtime.state.getNetwork(ctx, c.networkID); err != nil {
		return nil, err
	}
	return &connector.PingResponse{Version: RuntimeVersion, Participant: embeddedSec.participant}, nil
}

// QueryChainCode runs a read-only engine function.
func (c *connection) QueryChainCode(ctx context.Context, sec connector.SecurityContext, fcn string, args []string) ([]byte, error) {
	if _, err := c.check(sec); err != nil {
		return nil, err
	}
	switch fcn {
	case "getBusinessNetwork":
		archive, err := c.runtime.state.getNetwork(ctx, c.networkID)
		if err != nil {
			return nil, err
		}
		return []byte(archive), nil

	case "getAllRegistries":
		if err := requireArgs(fcn, args, 1); err != nil {
			return nil, err
		}
		rows, err := c.runtime.state.getAllRegistries(ctx, c.networkID, args[0])
		if err != nil {
			return nil, err
		}
		return json.Marshal(rows)

	case "getRegistry":
		if err := requireArgs(fcn, args, 2); err != nil {
			return nil, err
		}
		name, err := c.runtime.state.getRegistry(ctx, c.networkID, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return json.Marshal(registryRow{Type: args[0], ID: args[1], Name: name})

	case "existsRegistry":
		if err := requireArgs(fcn, args, 2); err != nil {
			return nil, err
		}
		exists, err := c.runtime.state.existsRegistry(ctx, c.networkID, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return json.Marshal(exists)

	case "getAllResourcesInRegistry":
		if err := requireArgs(fcn, args, 2); err != nil {
			return nil, err
		}
		datas, err := c.runtime.state.getAllResources(ctx, c.networkID, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return marshalRawList(datas)

	case "getResourceInRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return nil, err
		}
		data, err := c.runtime.state.getResource(ctx, c.networkID, args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		return []byte(data), nil

	case "existsResourceInRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return nil, err
		}
		exists, err := c.runtime.state.existsResource(ctx, c.networkID, args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		return json.Marshal(exists)

	case "executeQuery":
		if err := requireArgs(fcn, args, 3); err != nil {
			return nil, err
		}
		return c.executeQuery(ctx, args[0], args[1], args[2])

	default:
		return nil, errors.Errorf("unknown chaincode query function %s", fcn)
	}
}

// InvokeChainCode runs an engine function that mutates the world state.
func (c *connection) InvokeChainCode(ctx context.Context, sec connector.SecurityContext, fcn string, args []string) error {
	if _, err := c.check(sec); err != nil {
		return err
	}
	switch fcn {
	case "addRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return err
		}
		exists, err := c.runtime.state.existsRegistry(ctx, c.networkID, args[0], args[1])
		if err != nil {
			return err
		}
		if exists {
			return errors.Errorf("registry %s of type %s already exists", args[1], args[0])
		}
		return c.runtime.state.addRegistry(ctx, c.networkID, args[0], args[1], args[2])

	case "addResourceToRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return err
		}
		resource, err := c.deserialize(ctx, args[2])
		if err != nil {
			return err
		}
		return c.runtime.state.addResource(ctx, c.networkID, args[0], args[1], resource.Identifier(), args[2])

	case "updateResourceInRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return err
		}
		resource, err := c.deserialize(ctx, args[2])
		if err != nil {
			return err
		}
		return c.runtime.state.updateResource(ctx, c.networkID, args[0], args[1], resource.Identifier(), args[2])

	case "removeResourceFromRegistry":
		if err := requireArgs(fcn, args, 3); err != nil {
			return err
		}
		return c.runtime.state.removeResource(ctx, c.networkID, args[0], args[1], args[2])

	case "submitTransaction":
		if err := requireArgs(fcn, args, 2); err != nil {
			return err
		}
		transaction, err := c.deserialize(ctx, args[1])
		if err != nil {
			return err
		}
		if transaction.Declaration().Kind != bnd.TransactionKind {
			return errors.Errorf("%s is not a transaction", transaction.FullyQualifiedType())
		}
		if transaction.Timestamp().IsZero() {
			return errors.Errorf("transaction %s has no timestamp", transaction.FullyQualifiedIdentifier())
		}
		return c.runtime.state.addResource(ctx, c.networkID, "Transaction", args[0], transaction.Identifier(), args[1])

	case "addParticipantIdentity":
		if err := requireArgs(fcn, args, 2); err != nil {
			return err
		}
		return c.runtime.state.bindIdentity(ctx, c.networkID, args[1], args[0])

	case "removeIdentity":
		if err := requireArgs(fcn, args, 1); err != nil {
			return err
		}
		return c.runtime.state.revokeIdentity(ctx, c.networkID, args[0])

	default:
		return errors.Errorf("unknown chaincode invoke function %s", fcn)
	}
}

// CreateIdentity issues a new enrollment credential. The secret is generated
// and stored hashed; it cannot be recovered later.
func (c *connection) CreateIdentity(ctx context.Context, sec connector.SecurityContext, userID string, opts connector.IdentityOptions) (*connector.Identity, error) {
	embeddedSec, err := c.check(sec)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errors.New("userID not specified")
	}
	issuer, err := c.runtime.state.getIdentity(ctx, c.networkID, embeddedSec.userID)
	if err != nil {
		return nil, err
	}
	if !issuer.Issuer {
		return nil, errors.Errorf("identity %s is not permitted to issue identities", embeddedSec.userID)
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash enrollment secret")
	}
	err = c.runtime.state.addIdentity(ctx, c.networkID, identityRow{
		UserID:      userID,
		SecretHash:  string(hash),
		Issuer:      opts.Issuer,
		Affiliation: opts.Affiliation,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create identity %s", userID)
	}
	return &connector.Identity{UserID: userID, UserSecret: secret}, nil
}

// Disconnect closes this session. The shared runtime stays open.
func (c *connection) Disconnect() error {
	c.closed = true
	return nil
}

func (c *connection) deserialize(ctx context.Context, data string) (*bnd.Resource, error) {
	definition, err := c.runtime.definition(ctx, c.networkID)
	if err != nil {
		return nil, err
	}
	return definition.Serializer().FromJSON([]byte(data))
}

func requireArgs(fcn string, args []string, n int) error {
	if len(args) != n {
		return errors.Errorf("chaincode function %s expects %d arguments, got %d", fcn, n, len(args))
	}
	return nil
}

func marshalRawList(datas []string) ([]byte, error) {
	raw := make([]json.RawMessage, len(datas))
	for i, data := range datas {
		raw[i] = json.RawMessage(data)
	}
	return json.Marshal(raw)
}

func generateSecret() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate enrollment secret")
	}
	return hex.EncodeToString(buf), nil
}
