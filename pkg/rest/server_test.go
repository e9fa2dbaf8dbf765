/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd/bndtest"
	"github.com/hyperledger/composer-sdk-go/pkg/client"
	"github.com/hyperledger/composer-sdk-go/pkg/common/providers/connector"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/embedded"
	"github.com/hyperledger/composer-sdk-go/pkg/rest"
)

type runtimeManager struct {
	runtime *embedded.Runtime
}

func (m runtimeManager) Connect(ctx context.Context, p *connector.Profile, networkID string) (connector.Connection, error) {
	return m.runtime.Connect(networkID), nil
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	definition, err := bndtest.SampleDefinition()
	require.NoError(t, err)
	runtime, err := embedded.NewRuntime("")
	require.NoError(t, err)
	t.Cleanup(func() { runtime.Close() })
	require.NoError(t, runtime.Deploy(context.Background(), definition))

	bnc := client.New(runtimeManager{runtime})
	_, err = bnc.Connect(context.Background(),
		&connector.Profile{Name: "rest-test", Type: embedded.ProfileType},
		"basic-sample-network", embedded.AdminUserID, embedded.AdminSecret)
	require.NoError(t, err)
	t.Cleanup(func() { bnc.Disconnect() })

	server, err := rest.New(bnc)
	require.NoError(t, err)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthReportsRuntimeVersion(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, embedded.RuntimeVersion, doc["version"])
}

func TestAssetLifecycle(t *testing.T) {
	ts := testServer(t)
	assetDoc := `{"$class": "org.acme.sample.SampleAsset", "assetId": "asset1", "owner": "alice", "value": "100"}`

	resp, err := http.Post(ts.URL+"/api/SampleAsset", "application/json", strings.NewReader(assetDoc))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/SampleAsset/asset1")
	require.NoError(t, err)
	doc := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", doc["owner"])

	resp, err = http.Head(ts.URL + "/api/SampleAsset/asset1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Head(ts.URL + "/api/SampleAsset/nosuch")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	updated := `{"$class": "org.acme.sample.SampleAsset", "assetId": "asset1", "owner": "bob", "value": "200"}`
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/SampleAsset/asset1", strings.NewReader(updated))
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/api/SampleAsset/asset1", nil)
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/SampleAsset/asset1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListWithFilter(t *testing.T) {
	ts := testServer(t)
	for _, doc := range []string{
		`{"$class": "org.acme.sample.SampleAsset", "assetId": "asset1", "owner": "alice"}`,
		`{"$class": "org.acme.sample.SampleAsset", "assetId": "asset2", "owner": "bob"}`,
		`{"$class": "org.acme.sample.SampleAsset", "assetId": "asset3", "owner": "alice"}`,
	} {
		resp, err := http.Post(ts.URL+"/api/SampleAsset", "application/json", strings.NewReader(doc))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/api/SampleAsset")
	require.NoError(t, err)
	var all []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	assert.Len(t, all, 3)

	filter := url.QueryEscape(`{"where": {"owner": "alice"}}`)
	resp, err = http.Get(ts.URL + "/api/SampleAsset?filter=" + filter)
	require.NoError(t, err)
	var filtered []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	resp.Body.Close()
	require.Len(t, filtered, 2)
	assert.Equal(t, "asset1", filtered[0]["assetId"])
	assert.Equal(t, "asset3", filtered[1]["assetId"])

	resp, err = http.Get(ts.URL + "/api/SampleAsset?filter=" + url.QueryEscape(`{"where": {"owner": {"like": "a"}}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactionEndpointIsSubmitOnly(t *testing.T) {
	ts := testServer(t)

	txDoc := `{"$class": "org.acme.sample.SampleTransaction", "asset": "asset1", "newValue": "300"}`
	resp, err := http.Post(ts.URL+"/api/SampleTransaction", "application/json", strings.NewReader(txDoc))
	require.NoError(t, err)
	doc := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, doc["transactionId"])
	assert.NotEmpty(t, doc["timestamp"])

	resp, err = http.Get(ts.URL + "/api/SampleTransaction")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/SampleTransaction/tx1", nil)
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConceptsAreNotRouted(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/SampleConcept")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRejectsMismatchedType(t *testing.T) {
	ts := testServer(t)

	participantDoc := `{"$class": "org.acme.sample.SampleParticipant", "participantId": "p1", "firstName": "A", "lastName": "B"}`
	resp, err := http.Post(ts.URL+"/api/SampleAsset", "application/json", strings.NewReader(participantDoc))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRejectsMismatchedIdentifier(t *testing.T) {
	ts := testServer(t)

	assetDoc := `{"$class": "org.acme.sample.SampleAsset", "assetId": "asset1", "owner": "alice"}`
	resp, err := http.Post(ts.URL+"/api/SampleAsset", "application/json", strings.NewReader(assetDoc))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/SampleAsset/other", strings.NewReader(assetDoc))
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/SampleAsset")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "composer_rest_requests_total")
	assert.Contains(t, string(body), `type="SampleAsset"`)
}
