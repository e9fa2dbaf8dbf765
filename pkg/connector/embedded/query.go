/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embedded

import (
	"context"
	"encoding/json"

	"github.com/thedevsaddam/gojsonq"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// queryDoc is the JSON document accepted by the executeQuery engine
// function: a conjunction of conditions over resource properties.
type queryDoc struct {
	Where []queryCondition `json:"where"`
}

type queryCondition struct {
	Field string      `json:"field"`
	Op    string      `json:"op"`
	Value interface{} `json:"value"`
}

var queryOps = map[string]string{
	"eq":  "=",
	"neq": "!=",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// executeQuery evaluates a query document against all resources of a
// registry and returns the matches as a JSON array.
func (c *connection) executeQuery(ctx context.Context, rtype, registryID, query string) ([]byte, error) {
	doc := &queryDoc{}
	if err := json.Unmarshal([]byte(query), doc); err != nil {
		return nil, errors.Wrap(err, "invalid query document")
	}

	datas, err := c.runtime.state.getAllResources(ctx, c.networkID, rtype, registryID)
	if err != nil {
		return nil, err
	}
	all, err := marshalRawList(datas)
	if err != nil {
		return nil, err
	}

	jq := gojsonq.New().FromString(string(all))
	for _, cond := range doc.Where {
		if cond.Field == "" {
			return nil, errors.New("query condition does not specify a field")
		}
		op, ok := queryOps[cond.Op]
		if !ok {
			return nil, errors.Errorf("unsupported query operator %q", cond.Op)
		}
		jq.Where(cond.Field, op, cond.Value)
	}
	result := jq.Get()
	if err := jq.Error(); err != nil {
		return nil, errors.Wrap(err, "query evaluation failed")
	}
	if result == nil {
		result = []interface{}{}
	}
	return json.Marshal(result)
}
