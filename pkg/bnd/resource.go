/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bnd

import (
	"time"
)

// Resource is a typed instance of a class declaration: an asset, participant,
// transaction or concept. Resources are produced by a Factory and exchanged
// through a Serializer; the property bag holds everything except the
// identifier and timestamp.
type Resource struct {
	decl       *ClassDeclaration
	identifier string
	timestamp  time.Time
	properties map[string]interface{}
}

// Declaration returns the class declaration this resource instantiates.
func (r *Resource) Declaration() *ClassDeclaration {
	return r.decl
}

// Namespace returns the namespace of the resource's type.
func (r *Resource) Namespace() string {
	return r.decl.namespace
}

// Type returns the unqualified name of the resource's type.
func (r *Resource) Type() string {
	return r.decl.Name
}

// FullyQualifiedType returns namespace.Type.
func (r *Resource) FullyQualifiedType() string {
	return r.decl.FullyQualifiedName()
}

// Identifier returns the value of the resource's identifying field.
func (r *Resource) Identifier() string {
	return r.identifier
}

// SetIdentifier sets the value of the resource's identifying field.
func (r *Resource) SetIdentifier(id string) {
	r.identifier = id
}

// FullyQualifiedIdentifier returns namespace.Type#identifier.
func (r *Resource) FullyQualifiedIdentifier() string {
	return r.FullyQualifiedType() + "#" + r.identifier
}

// Timestamp returns the resource's timestamp. Only transactions carry one.
func (r *Resource) Timestamp() time.Time {
	return r.timestamp
}

// SetTimestamp sets the resource's timestamp.
func (r *Resource) SetTimestamp(ts time.Time) {
	r.timestamp = ts
}

// GetProperty returns a property value and whether it was set.
func (r *Resource) GetProperty(name string) (interface{}, bool) {
	value, ok := r.properties[name]
	return value, ok
}

// SetProperty sets a property value.
func (r *Resource) SetProperty(name string, value interface{}) {
	if r.properties == nil {
		r.properties = make(map[string]interface{})
	}
	r.properties[name] = value
}

// Properties returns a copy of the resource's property bag.
func (r *Resource) Properties() map[string]interface{} {
	props := make(map[string]interface{}, len(r.properties))
	for name, value := range r.properties {
		props[name] = value
	}
	return props
}
