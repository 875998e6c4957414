package search

import (
	"fmt"
	"strings"
)

// Op identifies a clause type.
type Op uint8

const (
	// OpAnyOf matches when a text field equals any of Values, ignoring case.
	OpAnyOf Op = iota + 1
	// OpBetween matches when a number field lies in [Min, Max]; nil bounds are open.
	OpBetween
	// OpContains matches when any of Fields contains any of Values as a
	// case-insensitive substring.
	OpContains
	// OpIs matches when a flag field equals Flag.
	OpIs
)

// FieldRef names a field together with its kind, so stores can compile a
// clause without the schema.
type FieldRef struct {
	Name string
	Kind Kind
}

// Clause is one conjunct of a Predicate. Values are lower-cased.
type Clause struct {
	Op     Op
	Field  FieldRef
	Fields []FieldRef
	Values []string
	Min    *float64
	Max    *float64
	Flag   bool
}

// AnyOf builds an OpAnyOf clause.
func AnyOf(field FieldRef, values ...string) Clause {
	return Clause{Op: OpAnyOf, Field: field, Values: lowerAll(values)}
}

// Between builds an OpBetween clause.
func Between(field FieldRef, min, max *float64) Clause {
	return Clause{Op: OpBetween, Field: field, Min: copyFloat(min), Max: copyFloat(max)}
}

// Contains builds an OpContains clause.
func Contains(fields []FieldRef, needles ...string) Clause {
	return Clause{Op: OpContains, Fields: append([]FieldRef(nil), fields...), Values: lowerAll(needles)}
}

// Is builds an OpIs clause.
func Is(field FieldRef, v bool) Clause {
	return Clause{Op: OpIs, Field: field, Flag: v}
}

func (c Clause) String() string {
	switch c.Op {
	case OpAnyOf:
		return fmt.Sprintf("%s in [%s]", c.Field.Name, strings.Join(c.Values, ","))
	case OpBetween:
		return fmt.Sprintf("%s between [%s,%s]", c.Field.Name, bound(c.Min), bound(c.Max))
	case OpContains:
		names := make([]string, len(c.Fields))
		for i, f := range c.Fields {
			names[i] = f.Name
		}
		return fmt.Sprintf("[%s] contains [%s]", strings.Join(names, ","), strings.Join(c.Values, ","))
	case OpIs:
		return fmt.Sprintf("%s is %t", c.Field.Name, c.Flag)
	default:
		return "invalid"
	}
}

// Predicate is an immutable conjunction of clauses. The zero value matches
// every record.
type Predicate struct {
	clauses []Clause
}

// And returns a new predicate with c appended. p is not modified.
func (p Predicate) And(c Clause) Predicate {
	next := make([]Clause, len(p.clauses), len(p.clauses)+1)
	copy(next, p.clauses)
	return Predicate{clauses: append(next, c)}
}

// Clauses returns a deep copy of the conjuncts in the order they were added.
func (p Predicate) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	for i, c := range p.clauses {
		c.Values = append([]string(nil), c.Values...)
		c.Fields = append([]FieldRef(nil), c.Fields...)
		c.Min = copyFloat(c.Min)
		c.Max = copyFloat(c.Max)
		out[i] = c
	}
	return out
}

// Len returns the number of clauses.
func (p Predicate) Len() int { return len(p.clauses) }

func (p Predicate) String() string {
	if len(p.clauses) == 0 {
		return "true"
	}
	parts := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " and ")
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func bound(f *float64) string {
	if f == nil {
		return "*"
	}
	return fmt.Sprintf("%g", *f)
}
