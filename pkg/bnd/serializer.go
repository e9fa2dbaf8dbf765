/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bnd

import (
	"encoding/json"
	"time"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// Field names with special meaning in the serialized form.
const (
	classField     = "$class"
	timestampField = "timestamp"
)

// Serializer converts resources to and from their JSON wire form. The JSON
// form carries the fully-qualified type in $class, the identifier in the
// declaration's identifying field and, for transactions, an RFC3339 UTC
// timestamp.
type Serializer struct {
	modelManager *ModelManager
	factory      *Factory
}

// NewSerializer returns a serializer over the given model manager and factory.
func NewSerializer(modelManager *ModelManager, factory *Factory) *Serializer {
	return &Serializer{modelManager: modelManager, factory: factory}
}

// ToJSON serializes a resource.
func (s *Serializer) ToJSON(resource *Resource) ([]byte, error) {
	if resource == nil {
		return nil, errors.New("resource not specified")
	}
	decl := resource.Declaration()
	doc := make(map[string]interface{}, len(resource.properties)+3)
	for name, value := range resource.properties {
		doc[name] = value
	}
	doc[classField] = decl.FullyQualifiedName()
	if decl.Identified() {
		if resource.Identifier() == "" {
			return nil, errors.Errorf("resource of type %s has no identifier", decl.FullyQualifiedName())
		}
		doc[decl.IdentifierField()] = resource.Identifier()
	}
	if decl.Kind == TransactionKind {
		if resource.Timestamp().IsZero() {
			return nil, errors.Errorf("transaction of type %s has no timestamp", decl.FullyQualifiedName())
		}
		doc[timestampField] = resource.Timestamp().UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(doc)
}

// FromJSON deserializes a resource. The $class field must name a type
// declared in the business network.
func (s *Serializer) FromJSON(data []byte) (*Resource, error) {
	doc := make(map[string]interface{})
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid resource document")
	}
	rawClass, ok := doc[classField]
	if !ok {
		return nil, errors.New("resource document is missing $class")
	}
	fqn, ok := rawClass.(string)
	if !ok {
		return nil, errors.New("resource document $class is not a string")
	}
	decl, err := s.modelManager.GetType(fqn)
	if err != nil {
		return nil, err
	}

	resource := &Resource{decl: decl, properties: make(map[string]interface{})}
	delete(doc, classField)

	if decl.Identified() {
		idField := decl.IdentifierField()
		rawID, ok := doc[idField]
		if !ok {
			// transactions may be submitted without an identifier; one is
			// generated before submission
			if decl.Kind != TransactionKind {
				return nil, errors.Errorf("resource of type %s is missing identifying field %s", fqn, idField)
			}
		} else {
			id, ok := rawID.(string)
			if !ok {
				return nil, errors.Errorf("identifying field %s of type %s is not a string", idField, fqn)
			}
			resource.identifier = id
			delete(doc, idField)
		}
	}

	if decl.Kind == TransactionKind {
		if rawTS, ok := doc[timestampField]; ok {
			str, ok := rawTS.(string)
			if !ok {
				return nil, errors.Errorf("timestamp of type %s is not a string", fqn)
			}
			ts, err := time.Parse(time.RFC3339Nano, str)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid timestamp on type %s", fqn)
			}
			resource.timestamp = ts
			delete(doc, timestampField)
		}
	}

	for name, value := range doc {
		resource.properties[name] = value
	}
	return resource, nil
}
