/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bnd implements business network definitions: the model manager,
// resource factory and serializer used by the client, plus reading and
// writing of business network archives.
package bnd

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// Kind enumerates the declaration kinds a model file can contain.
type Kind string

// Declaration kinds.
const (
	AssetKind       Kind = "asset"
	ParticipantKind Kind = "participant"
	TransactionKind Kind = "transaction"
	ConceptKind     Kind = "concept"
	EnumKind        Kind = "enum"
)

func (k Kind) valid() bool {
	switch k {
	case AssetKind, ParticipantKind, TransactionKind, ConceptKind, EnumKind:
		return true
	}
	return false
}

// Property describes a single property of a class declaration.
type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// ClassDeclaration describes a modelled type within a namespace.
type ClassDeclaration struct {
	Name         string     `json:"name"`
	Kind         Kind       `json:"kind"`
	IdentifiedBy string     `json:"identifiedBy,omitempty"`
	Properties   []Property `json:"properties,omitempty"`

	namespace string
}

// Namespace returns the namespace the declaration belongs to.
func (d *ClassDeclaration) Namespace() string {
	return d.namespace
}

// FullyQualifiedName returns namespace.Name.
func (d *ClassDeclaration) FullyQualifiedName() string {
	return d.namespace + "." + d.Name
}

// Identified returns true for declaration kinds that carry an identifier.
func (d *ClassDeclaration) Identified() bool {
	return d.Kind == AssetKind || d.Kind == ParticipantKind || d.Kind == TransactionKind
}

// IdentifierField returns the name of the identifying field. Transactions
// without an explicit identifiedBy use transactionId.
func (d *ClassDeclaration) IdentifierField() string {
	if d.IdentifiedBy != "" {
		return d.IdentifiedBy
	}
	if d.Kind == TransactionKind {
		return "transactionId"
	}
	return ""
}

// ModelFile is a set of declarations sharing a namespace.
type ModelFile struct {
	Namespace    string              `json:"namespace"`
	Declarations []*ClassDeclaration `json:"declarations"`
}

// ParseModelFile reads a JSON model file.
func ParseModelFile(data []byte) (*ModelFile, error) {
	mf := &ModelFile{}
	if err := json.Unmarshal(data, mf); err != nil {
		return nil, errors.Wrap(err, "invalid model file")
	}
	if mf.Namespace == "" {
		return nil, errors.New("model file is missing a namespace")
	}
	for _, decl := range mf.Declarations {
		if decl.Name == "" {
			return nil, errors.Errorf("model file %s contains an unnamed declaration", mf.Namespace)
		}
		if !decl.Kind.valid() {
			return nil, errors.Errorf("declaration %s.%s has unknown kind %q", mf.Namespace, decl.Name, decl.Kind)
		}
		if decl.Kind == AssetKind || decl.Kind == ParticipantKind {
			if decl.IdentifiedBy == "" {
				return nil, errors.Errorf("declaration %s.%s must be identified by a field", mf.Namespace, decl.Name)
			}
		}
		decl.namespace = mf.Namespace
	}
	return mf, nil
}

// ModelManager indexes the class declarations of a business network by their
// fully-qualified names. Safe for concurrent readers once populated.
type ModelManager struct {
	mu    sync.RWMutex
	types map[string]*ClassDeclaration
}

// NewModelManager returns an empty model manager.
func NewModelManager() *ModelManager {
	return &ModelManager{types: make(map[string]*ClassDeclaration)}
}

// AddModelFile registers all declarations of the model file.
func (m *ModelManager) AddModelFile(mf *ModelFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, decl := range mf.Declarations {
		fqn := decl.FullyQualifiedName()
		if _, exists := m.types[fqn]; exists {
			return errors.Errorf("duplicate declaration %s", fqn)
		}
		m.types[fqn] = decl
	}
	return nil
}

// GetType looks up a declaration by fully-qualified name.
func (m *ModelManager) GetType(fqn string) (*ClassDeclaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	decl, ok := m.types[fqn]
	if !ok {
		return nil, errors.Errorf("type %s is not declared in the business network", fqn)
	}
	return decl, nil
}

// HasType reports whether a declaration with the given fully-qualified name exists.
func (m *ModelManager) HasType(fqn string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.types[fqn]
	return ok
}

// DeclarationsOfKind returns all declarations of the given kind sorted by
// fully-qualified name.
func (m *ModelManager) DeclarationsOfKind(kind Kind) []*ClassDeclaration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var decls []*ClassDeclaration
	for _, decl := range m.types {
		if decl.Kind == kind {
			decls = append(decls, decl)
		}
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].FullyQualifiedName() < decls[j].FullyQualifiedName()
	})
	return decls
}

// SplitFullyQualifiedName splits namespace.Name into its two parts.
func SplitFullyQualifiedName(fqn string) (namespace string, name string, err error) {
	idx := strings.LastIndex(fqn, ".")
	if idx <= 0 || idx == len(fqn)-1 {
		return "", "", errors.Errorf("%q is not a fully-qualified type name", fqn)
	}
	return fqn[:idx], fqn[idx+1:], nil
}
