package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Op is a filter comparison operator.
type Op int

const (
	// OpEq matches documents whose field equals Value.
	OpEq Op = iota
	// OpIn matches documents whose field equals any of Values.
	OpIn
	// OpContainsFold matches string fields containing Value, ignoring case.
	OpContainsFold
)

// Cond is a single filter condition on a top-level field.
type Cond struct {
	Field  string
	Op     Op
	Value  any
	Values []any
}

// Filter is a conjunction of conditions. An empty filter matches everything.
type Filter []Cond

// All matches every document.
var All = Filter{}

// Where builds a filter from conditions.
func Where(conds ...Cond) Filter {
	return Filter(conds)
}

// Eq matches field == value.
func Eq(field string, value any) Cond {
	return Cond{Field: field, Op: OpEq, Value: value}
}

// ByID matches the document with the given store identifier.
func ByID(id string) Cond {
	return Eq(IDField, id)
}

// In matches field equal to any of values. With no values nothing matches.
func In[T any](field string, values ...T) Cond {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Cond{Field: field, Op: OpIn, Values: vs}
}

// ContainsFold matches string fields containing substr, case-insensitively.
func ContainsFold(field, substr string) Cond {
	return Cond{Field: field, Op: OpContainsFold, Value: substr}
}

// Match evaluates the filter against doc.
func (f Filter) Match(doc Document) bool {
	for _, c := range f {
		if !c.match(doc) {
			return false
		}
	}
	return true
}

func (c Cond) match(doc Document) bool {
	got, ok := doc[c.Field]
	switch c.Op {
	case OpEq:
		return equal(got, ok, c.Value)
	case OpIn:
		for _, v := range c.Values {
			if equal(got, ok, v) {
				return true
			}
		}
		return false
	case OpContainsFold:
		s, isString := got.(string)
		sub, _ := c.Value.(string)
		return isString && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	return false
}

// equal compares a stored value with a filter value after normalizing both to
// their JSON form, so 1, int64(1) and 1.0 are the same number.
func equal(got any, present bool, want any) bool {
	if !present {
		return want == nil
	}
	return normalize(got) == normalize(want)
}

func normalize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return string(b)
	}
	b, _ = json.Marshal(generic)
	return string(b)
}
