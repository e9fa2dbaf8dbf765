/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
)

func filterTestResources(t *testing.T) []*bnd.Resource {
	t.Helper()
	mf, err := bnd.ParseModelFile([]byte(`{
		"namespace": "org.example",
		"declarations": [
			{"name": "Account", "kind": "asset", "identifiedBy": "accountId",
			 "properties": [
				{"name": "accountId", "type": "String"},
				{"name": "owner", "type": "String"},
				{"name": "balance", "type": "Double"}
			 ]}
		]
	}`))
	require.NoError(t, err)
	mm := bnd.NewModelManager()
	require.NoError(t, mm.AddModelFile(mf))
	factory := bnd.NewFactory(mm)

	newAccount := func(id, owner string, balance float64) *bnd.Resource {
		account, err := factory.NewResource("org.example", "Account", id)
		require.NoError(t, err)
		account.SetProperty("owner", owner)
		account.SetProperty("balance", balance)
		return account
	}
	return []*bnd.Resource{
		newAccount("a1", "alice", 100),
		newAccount("a2", "bob", 250),
		newAccount("a3", "alice", 300),
	}
}

func TestParseFilterEmpty(t *testing.T) {
	filter, err := parseFilter("")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = parseFilter(`{"where": {}}`)
	require.NoError(t, err)
	assert.Nil(t, filter)
}

func TestFilterEquality(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"owner": "alice"}}`)
	require.NoError(t, err)
	matched := filter.apply(resources)
	require.Len(t, matched, 2)
	assert.Equal(t, "a1", matched[0].Identifier())
	assert.Equal(t, "a3", matched[1].Identifier())
}

func TestFilterOperators(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"balance": {"gt": 150}}}`)
	require.NoError(t, err)
	matched := filter.apply(resources)
	require.Len(t, matched, 2)

	filter, err = parseFilter(`{"where": {"balance": {"gte": 100}, "owner": "alice"}}`)
	require.NoError(t, err)
	matched = filter.apply(resources)
	require.Len(t, matched, 2)

	filter, err = parseFilter(`{"where": {"balance": {"lt": 100}}}`)
	require.NoError(t, err)
	assert.Empty(t, filter.apply(resources))
}

func TestFilterOr(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"or": [{"owner": "bob"}, {"balance": {"gt": 250}}]}}`)
	require.NoError(t, err)
	matched := filter.apply(resources)
	require.Len(t, matched, 2)
	assert.Equal(t, "a2", matched[0].Identifier())
	assert.Equal(t, "a3", matched[1].Identifier())
}

func TestFilterAnd(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"and": [{"owner": "alice"}, {"balance": {"gte": 200}}]}}`)
	require.NoError(t, err)
	matched := filter.apply(resources)
	require.Len(t, matched, 1)
	assert.Equal(t, "a3", matched[0].Identifier())
}

func TestFilterNestedCombinations(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"or": [
		{"and": [{"owner": "alice"}, {"balance": {"lt": 150}}]},
		{"owner": "bob"}
	]}}`)
	require.NoError(t, err)
	matched := filter.apply(resources)
	require.Len(t, matched, 2)
	assert.Equal(t, "a1", matched[0].Identifier())
	assert.Equal(t, "a2", matched[1].Identifier())
}

func TestFilterRejectsBadCombination(t *testing.T) {
	_, err := parseFilter(`{"where": {"or": {"owner": "alice"}}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"or" clause must be a non-empty array`)

	_, err = parseFilter(`{"where": {"and": []}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"and" clause must be a non-empty array`)

	_, err = parseFilter(`{"where": {"or": ["owner"]}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"or" clause entries must be condition objects`)

	_, err = parseFilter(`{"where": {"owner": ["alice", "bob"]}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid filter condition for field "owner"`)
}

func TestFilterMissingPropertyDoesNotMatch(t *testing.T) {
	resources := filterTestResources(t)

	filter, err := parseFilter(`{"where": {"nosuch": "x"}}`)
	require.NoError(t, err)
	assert.Empty(t, filter.apply(resources))
}

func TestFilterRejectsUnknownOperator(t *testing.T) {
	_, err := parseFilter(`{"where": {"owner": {"like": "a"}}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported filter operator "like"`)
}

func TestFilterRejectsBadDocument(t *testing.T) {
	_, err := parseFilter(`{"where": `)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter document")

	_, err = parseFilter(`{"where": {"a b": 1}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter field")
}
