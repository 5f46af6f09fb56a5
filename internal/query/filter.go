// Package query builds store queries from typed filter descriptions.
// Handlers assemble a Filter from validated request parameters and lower
// it to the driver's bson representation in one place, instead of growing
// ad-hoc bson.M maps inline.
package query

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

type Op string

const (
	OpEq     Op = "eq"
	OpGte    Op = "gte"
	OpRange  Op = "range"
	OpPrefix Op = "prefix"
	OpRegex  Op = "regex"
)

type Condition struct {
	Field string
	Op    Op
	Value interface{}
	High  interface{} // upper bound, range only
}

// Filter is an ordered set of conditions combined with AND semantics.
type Filter struct {
	conds []Condition
}

func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) Eq(field string, value interface{}) *Filter {
	f.conds = append(f.conds, Condition{Field: field, Op: OpEq, Value: value})
	return f
}

func (f *Filter) Gte(field string, value interface{}) *Filter {
	f.conds = append(f.conds, Condition{Field: field, Op: OpGte, Value: value})
	return f
}

// Range adds an inclusive low <= field <= high condition.
func (f *Filter) Range(field string, low, high interface{}) *Filter {
	f.conds = append(f.conds, Condition{Field: field, Op: OpRange, Value: low, High: high})
	return f
}

// Prefix adds a case-sensitive prefix match; the prefix is quoted before
// being lowered to a regex.
func (f *Filter) Prefix(field, prefix string) *Filter {
	f.conds = append(f.conds, Condition{Field: field, Op: OpPrefix, Value: prefix})
	return f
}

// Regex adds a raw regular-expression condition. Used only for the
// completion-percentage text prefilter.
func (f *Filter) Regex(field, expr string) *Filter {
	f.conds = append(f.conds, Condition{Field: field, Op: OpRegex, Value: expr})
	return f
}

// Validate checks the filter is well-formed before it touches the store.
func (f *Filter) Validate() error {
	for _, c := range f.conds {
		if c.Field == "" {
			return fmt.Errorf("filter condition with empty field")
		}
		switch c.Op {
		case OpEq, OpGte:
			if c.Value == nil {
				return fmt.Errorf("%s: %s condition requires a value", c.Field, c.Op)
			}
		case OpRange:
			if c.Value == nil || c.High == nil {
				return fmt.Errorf("%s: range condition requires both bounds", c.Field)
			}
		case OpPrefix, OpRegex:
			s, ok := c.Value.(string)
			if !ok || s == "" {
				return fmt.Errorf("%s: %s condition requires a non-empty string", c.Field, c.Op)
			}
			if c.Op == OpRegex {
				if _, err := regexp.Compile(s); err != nil {
					return fmt.Errorf("%s: invalid regex: %w", c.Field, err)
				}
			}
		default:
			return fmt.Errorf("%s: unknown filter op %q", c.Field, c.Op)
		}
	}
	return nil
}

// BSON lowers the filter to the driver's query representation.
func (f *Filter) BSON() bson.M {
	out := bson.M{}
	for _, c := range f.conds {
		switch c.Op {
		case OpEq:
			out[c.Field] = c.Value
		case OpGte:
			out[c.Field] = bson.M{"$gte": c.Value}
		case OpRange:
			out[c.Field] = bson.M{"$gte": c.Value, "$lte": c.High}
		case OpPrefix:
			out[c.Field] = bson.M{"$regex": "^" + regexp.QuoteMeta(c.Value.(string))}
		case OpRegex:
			out[c.Field] = bson.M{"$regex": c.Value.(string)}
		}
	}
	return out
}
