/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bndtest provides a sample business network definition for use in
// tests across the SDK.
package bndtest

import (
	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
)

// Namespace of the sample business network's model.
const Namespace = "org.acme.sample"

// SampleDefinition returns a small business network definition with one
// asset, one participant, one transaction, one concept and one enum.
func SampleDefinition() (*bnd.BusinessNetworkDefinition, error) {
	mf, err := bnd.ParseModelFile([]byte(`{
		"namespace": "org.acme.sample",
		"declarations": [
			{
				"name": "SampleAsset",
				"kind": "asset",
				"identifiedBy": "assetId",
				"properties": [
					{"name": "assetId", "type": "String"},
					{"name": "owner", "type": "String"},
					{"name": "value", "type": "String", "optional": true}
				]
			},
			{
				"name": "SampleParticipant",
				"kind": "participant",
				"identifiedBy": "participantId",
				"properties": [
					{"name": "participantId", "type": "String"},
					{"name": "firstName", "type": "String"},
					{"name": "lastName", "type": "String"}
				]
			},
			{
				"name": "SampleTransaction",
				"kind": "transaction",
				"properties": [
					{"name": "asset", "type": "String"},
					{"name": "newValue", "type": "String"}
				]
			},
			{
				"name": "SampleConcept",
				"kind": "concept",
				"properties": [
					{"name": "street", "type": "String"},
					{"name": "city", "type": "String"}
				]
			},
			{
				"name": "SampleState",
				"kind": "enum"
			}
		]
	}`))
	if err != nil {
		return nil, err
	}
	return bnd.NewBusinessNetworkDefinition("basic-sample-network", "0.2.6", "The Hello World of business networks", mf)
}
