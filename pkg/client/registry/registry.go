/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package registry provides access to the asset, participant and transaction
// registries of a deployed business network. All operations delegate to the
// chaincode registry functions through the connection held by the provider.
package registry

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/registry")

// Registry types understood by the business network runtime.
const (
	AssetType       = "Asset"
	ParticipantType = "Participant"
	TransactionType = "Transaction"
)

// DefaultRegistryID is the identifier of the default transaction registry.
const DefaultRegistryID = "default"

// Provider carries the collaborators every registry operation needs: the
// connection, the authenticated security context and the business network's
// model manager, factory and serializer.
type Provider struct {
	Connection   connector.Connection
	Security     connector.SecurityContext
	ModelManager *bnd.ModelManager
	Factory      *bnd.Factory
	Serializer   *bnd.Serializer
}

func (p Provider) validate() error {
	if p.Connection == nil {
		return errors.New("connection not specified")
	}
	if p.Security == nil {
		return errors.New("security context not specified")
	}
	if p.Serializer == nil {
		return errors.New("serializer not specified")
	}
	return nil
}

// descriptor is the wire form of a registry.
type descriptor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry is a named collection of resources within a business network.
// Transaction registries are read-only from the client; transactions are
// added by submitting them.
type Registry struct {
	registryType string
	id           string
	name         string
	provider     Provider
}

func newRegistry(p Provider, desc descriptor) *Registry {
	return &Registry{registryType: desc.Type, id: desc.ID, name: desc.Name, provider: p}
}

// ID returns the registry identifier.
func (r *Registry) ID() string {
	return r.id
}

// Name returns the registry's display name.
func (r *Registry) Name() string {
	return r.name
}

// RegistryType returns Asset, Participant or Transaction.
func (r *Registry) RegistryType() string {
	return r.registryType
}

func (r *Registry) readOnly() bool {
	return r.registryType == TransactionType
}

// GetAllRegistries returns all registries of the given type.
func GetAllRegistries(ctx context.Context, p Provider, registryType string) ([]*Registry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	payload, err := p.Connection.QueryChainCode(ctx, p.Security, "getAllRegistries", []string{registryType})
	if err != nil {
		return nil, err
	}
	var descs []descriptor
	if err := json.Unmarshal(payload, &descs); err != nil {
		return nil, errors.Wrap(err, "invalid registry list payload")
	}
	registries := make([]*Registry, len(descs))
	for i, desc := range descs {
		registries[i] = newRegistry(p, desc)
	}
	return registries, nil
}

// GetRegistry returns the registry of the given type and identifier.
func GetRegistry(ctx context.Context, p Provider, registryType, id string) (*Registry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	payload, err := p.Connection.QueryChainCode(ctx, p.Security, "getRegistry", []string{registryType, id})
	if err != nil {
		return nil, err
	}
	var desc descriptor
	if err := json.Unmarshal(payload, &desc); err != nil {
		return nil, errors.Wrap(err, "invalid registry payload")
	}
	return newRegistry(p, desc), nil
}

// ExistsRegistry reports whether the registry of the given type and
// identifier exists.
func ExistsRegistry(ctx context.Context, p Provider, registryType, id string) (bool, error) {
	if err := p.validate(); err != nil {
		return false, err
	}
	payload, err := p.Connection.QueryChainCode(ctx, p.Security, "existsRegistry", []string{registryType, id})
	if err != nil {
		return false, err
	}
	var exists bool
	if err := json.Unmarshal(payload, &exists); err != nil {
		return false, errors.Wrap(err, "invalid registry existence payload")
	}
	return exists, nil
}

// AddRegistry creates a registry of the given type.
func AddRegistry(ctx context.Context, p Provider, registryType, id, name string) (*Registry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	logger.Debugf("adding %s registry %s", registryType, id)
	err := p.Connection.InvokeChainCode(ctx, p.Security, "addRegistry", []string{registryType, id, name})
	if err != nil {
		return nil, err
	}
	return newRegistry(p, descriptor{Type: registryType, ID: id, Name: name}), nil
}

// GetAll returns every resource in the registry.
func (r *Registry) GetAll(ctx context.Context) ([]*bnd.Resource, error) {
	payload, err := r.provider.Connection.QueryChainCode(ctx, r.provider.Security, "getAllResourcesInRegistry", []string{r.registryType, r.id})
	if err != nil {
		return nil, err
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, errors.Wrap(err, "invalid resource list payload")
	}
	resources := make([]*bnd.Resource, len(docs))
	for i, doc := range docs {
		resource, err := r.provider.Serializer.FromJSON(doc)
		if err != nil {
			return nil, err
		}
		resources[i] = resource
	}
	return resources, nil
}

// Query returns the resources matching a query document of the form
// {"where":[{"field","op","value"}]}. Evaluation happens in the business
// network runtime.
func (r *Registry) Query(ctx context.Context, query string) ([]*bnd.Resource, error) {
	if query == "" {
		return nil, errors.New("query not specified")
	}
	payload, err := r.provider.Connection.QueryChainCode(ctx, r.provider.Security, "executeQuery", []string{r.registryType, r.id, query})
	if err != nil {
		return nil, err
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, errors.Wrap(err, "invalid query result payload")
	}
	resources := make([]*bnd.Resource, len(docs))
	for i, doc := range docs {
		resource, err := r.provider.Serializer.FromJSON(doc)
		if err != nil {
			return nil, err
		}
		resources[i] = resource
	}
	return resources, nil
}

// Get returns the resource with the given identifier.
func (r *Registry) Get(ctx context.Context, id string) (*bnd.Resource, error) {
	if id == "" {
		return nil, errors.New("id not specified")
	}
	payload, err := r.provider.Connection.QueryChainCode(ctx, r.provider.Security, "getResourceInRegistry", []string{r.registryType, r.id, id})
	if err != nil {
		return nil, err
	}
	return r.provider.Serializer.FromJSON(payload)
}

// Exists reports whether a resource with the given identifier is in the
// registry.
func (r *Registry) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, errors.New("id not specified")
	}
	payload, err := r.provider.Connection.QueryChainCode(ctx, r.provider.Security, "existsResourceInRegistry", []string{r.registryType, r.id, id})
	if err != nil {
		return false, err
	}
	var exists bool
	if err := json.Unmarshal(payload, &exists); err != nil {
		return false, errors.Wrap(err, "invalid resource existence payload")
	}
	return exists, nil
}

// Add stores a new resource in the registry.
func (r *Registry) Add(ctx context.Context, resource *bnd.Resource) error {
	if resource == nil {
		return errors.New("resource not specified")
	}
	if r.readOnly() {
		return errors.Errorf("transaction registry %s is read-only", r.id)
	}
	data, err := r.provider.Serializer.ToJSON(resource)
	if err != nil {
		return err
	}
	return r.provider.Connection.InvokeChainCode(ctx, r.provider.Security, "addResourceToRegistry", []string{r.registryType, r.id, string(data)})
}

// Update replaces an existing resource in the registry.
func (r *Registry) Update(ctx context.Context, resource *bnd.Resource) error {
	if resource == nil {
		return errors.New("resource not specified")
	}
	if r.readOnly() {
		return errors.Errorf("transaction registry %s is read-only", r.id)
	}
	data, err := r.provider.Serializer.ToJSON(resource)
	if err != nil {
		return err
	}
	return r.provider.Connection.InvokeChainCode(ctx, r.provider.Security, "updateResourceInRegistry", []string{r.registryType, r.id, string(data)})
}

// Remove deletes the resource with the given identifier from the registry.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id not specified")
	}
	if r.readOnly() {
		return errors.Errorf("transaction registry %s is read-only", r.id)
	}
	return r.provider.Connection.InvokeChainCode(ctx, r.provider.Security, "removeResourceFromRegistry", []string{r.registryType, r.id, id})
}
