/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bnd

import (
	"github.com/google/uuid"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// Factory creates resource instances from the declarations held by a model
// manager.
type Factory struct {
	modelManager *ModelManager
}

// NewFactory returns a factory over the given model manager.
func NewFactory(modelManager *ModelManager) *Factory {
	return &Factory{modelManager: modelManager}
}

// NewResource creates an asset or participant instance with the given
// identifier.
func (f *Factory) NewResource(namespace, typeName, identifier string) (*Resource, error) {
	decl, err := f.modelManager.GetType(namespace + "." + typeName)
	if err != nil {
		return nil, err
	}
	if decl.Kind != AssetKind && decl.Kind != ParticipantKind {
		return nil, errors.Errorf("%s is a %s, not an asset or participant", decl.FullyQualifiedName(), decl.Kind)
	}
	if identifier == "" {
		return nil, errors.New("identifier not specified")
	}
	return &Resource{decl: decl, identifier: identifier, properties: make(map[string]interface{})}, nil
}

// NewTransaction creates a transaction instance. The transaction identifier
// is generated if not supplied; the timestamp is left unset and is assigned
// at submission time.
func (f *Factory) NewTransaction(namespace, typeName string, identifier ...string) (*Resource, error) {
	decl, err := f.modelManager.GetType(namespace + "." + typeName)
	if err != nil {
		return nil, err
	}
	if decl.Kind != TransactionKind {
		return nil, errors.Errorf("%s is a %s, not a transaction", decl.FullyQualifiedName(), decl.Kind)
	}
	id := ""
	if len(identifier) > 0 {
		id = identifier[0]
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Resource{decl: decl, identifier: id, properties: make(map[string]interface{})}, nil
}

// NewConcept creates a concept instance. Concepts have no identifier.
func (f *Factory) NewConcept(namespace, typeName string) (*Resource, error) {
	decl, err := f.modelManager.GetType(namespace + "." + typeName)
	if err != nil {
		return nil, err
	}
	if decl.Kind != ConceptKind {
		return nil, errors.Errorf("%s is a %s, not a concept", decl.FullyQualifiedName(), decl.Kind)
	}
	return &Resource{decl: decl, properties: make(map[string]interface{})}, nil
}
