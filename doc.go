/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package composersdk enables Go developers to build solutions that interact with
// business networks deployed to a Hyperledger Fabric style ledger.
//
// Packages for end developer usage
//
// pkg/client: The main package of the Composer SDK. Provides the
// BusinessNetworkConnection used to connect to a deployed business network,
// access its registries and submit transactions.
// Reference: https://godoc.org/github.com/hyperledger/composer-sdk-go/pkg/client
//
// pkg/bnd: Business network definitions: model manager, resource factory,
// serializer and archive handling.
// Reference: https://godoc.org/github.com/hyperledger/composer-sdk-go/pkg/bnd
//
// pkg/connector/profile: Connection profile management. Profiles select and
// configure the connector used to reach the ledger.
// Reference: https://godoc.org/github.com/hyperledger/composer-sdk-go/pkg/connector/profile
//
// pkg/connector/embedded: An in-process connector backed by a local store,
// suitable for development and tests.
// Reference: https://godoc.org/github.com/hyperledger/composer-sdk-go/pkg/connector/embedded
//
// pkg/rest: A REST server that discovers the types of a business network and
// exposes CRUD endpoints for them.
// Reference: https://godoc.org/github.com/hyperledger/composer-sdk-go/pkg/rest
//
// Basic workflow
//
//	1) Load or create a connection profile using a profile manager.
//	2) Create a BusinessNetworkConnection and call Connect with the profile,
//	   the business network identifier and enrollment credentials.
//	3) Use the registry accessors and SubmitTransaction to work with the
//	   network's resources.
//	4) Call Disconnect to release the connection.
package composersdk
