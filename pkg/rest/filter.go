/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// filterDoc is the query filter accepted on list endpoints. The where clause
// maps property names either to a literal value (equality) or to an operator
// document such as {"gt": 5}; "and"/"or" keys combine arrays of nested where
// clauses.
type filterDoc struct {
	Where map[string]interface{} `json:"where"`
}

var filterOps = map[string]string{
	"eq":  "==",
	"neq": "!=",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// resourceFilter evaluates a compiled where clause against resources.
type resourceFilter struct {
	expr     *govaluate.EvaluableExpression
	literals map[string]interface{}
}

// filterBuilder accumulates literal bindings while compiling a where clause.
type filterBuilder struct {
	literals map[string]interface{}
}

// parseFilter compiles a filter document. An empty document matches
// everything; parseFilter then returns nil.
func parseFilter(doc string) (*resourceFilter, error) {
	if doc == "" {
		return nil, nil
	}
	filter := &filterDoc{}
	if err := json.Unmarshal([]byte(doc), filter); err != nil {
		return nil, errors.Wrap(err, "invalid filter document")
	}
	if len(filter.Where) == 0 {
		return nil, nil
	}

	builder := &filterBuilder{literals: make(map[string]interface{})}
	compiled, err := builder.compileWhere(filter.Where)
	if err != nil {
		return nil, err
	}
	expr, err := govaluate.NewEvaluableExpression(compiled)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile filter")
	}
	return &resourceFilter{expr: expr, literals: builder.literals}, nil
}

func (b *filterBuilder) addLiteral(value interface{}) string {
	name := fmt.Sprintf("__v%d", len(b.literals))
	b.literals[name] = value
	return name
}

// compileWhere turns a where clause into a govaluate expression. Sibling
// conditions are conjoined; "and"/"or" keys combine nested clauses.
func (b *filterBuilder) compileWhere(where map[string]interface{}) (string, error) {
	var clauses []string
	for key, condition := range where {
		switch strings.ToLower(key) {
		case "and", "or":
			clause, err := b.compileCombination(strings.ToLower(key), condition)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, clause)
		default:
			clause, err := b.compileCondition(key, condition)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, clause)
		}
	}
	return strings.Join(clauses, " && "), nil
}

func (b *filterBuilder) compileCombination(op string, condition interface{}) (string, error) {
	list, ok := condition.([]interface{})
	if !ok || len(list) == 0 {
		return "", errors.Errorf("%q clause must be a non-empty array of conditions", op)
	}
	joiner := " && "
	if op == "or" {
		joiner = " || "
	}
	clauses := make([]string, len(list))
	for i, raw := range list {
		nested, ok := raw.(map[string]interface{})
		if !ok {
			return "", errors.Errorf("%q clause entries must be condition objects", op)
		}
		clause, err := b.compileWhere(nested)
		if err != nil {
			return "", err
		}
		clauses[i] = clause
	}
	return "(" + strings.Join(clauses, joiner) + ")", nil
}

func (b *filterBuilder) compileCondition(field string, condition interface{}) (string, error) {
	if strings.ContainsAny(field, " ()+-*/%&|<>=!'\"[]") {
		return "", errors.Errorf("invalid filter field %q", field)
	}
	switch cond := condition.(type) {
	case map[string]interface{}:
		var clauses []string
		for op, value := range cond {
			symbol, ok := filterOps[op]
			if !ok {
				return "", errors.Errorf("unsupported filter operator %q", op)
			}
			clauses = append(clauses, fmt.Sprintf("[%s] %s [%s]", field, symbol, b.addLiteral(value)))
		}
		return strings.Join(clauses, " && "), nil
	case []interface{}:
		return "", errors.Errorf("invalid filter condition for field %q", field)
	default:
		return fmt.Sprintf("[%s] == [%s]", field, b.addLiteral(condition)), nil
	}
}

// matches reports whether the resource satisfies the where clause. Resources
// missing a referenced property do not match.
func (f *resourceFilter) matches(resource *bnd.Resource) bool {
	parameters := make(map[string]interface{}, len(f.literals)+4)
	for name, value := range f.literals {
		parameters[name] = value
	}
	for name, value := range resource.Properties() {
		parameters[name] = value
	}
	result, err := f.expr.Evaluate(parameters)
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// apply returns the resources matching the filter, preserving order.
func (f *resourceFilter) apply(resources []*bnd.Resource) []*bnd.Resource {
	matched := []*bnd.Resource{}
	for _, resource := range resources {
		if f.matches(resource) {
			matched = append(matched, resource)
		}
	}
	return matched
}
