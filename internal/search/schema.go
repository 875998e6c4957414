package search

import (
	"fmt"
	"sort"
	"strings"
)

// ParamKind says how a query parameter becomes a clause.
type ParamKind uint8

const (
	// ParamAnyOf is a comma-separated list of accepted values, or "all".
	ParamAnyOf ParamKind = iota + 1
	// ParamMin is an inclusive lower bound.
	ParamMin
	// ParamMax is an inclusive upper bound.
	ParamMax
	// ParamFlag is a boolean.
	ParamFlag
)

// Param maps a query parameter name to a field.
type Param struct {
	Name  string
	Field string
	Kind  ParamKind
}

// Weight assigns a relevance weight to a text field.
type Weight struct {
	Field  string
	Weight int
}

// SchemaConfig declares one searchable entity.
type SchemaConfig[T any] struct {
	Entity string
	Fields []Field[T]
	// Text lists the fields whose substrings admit a record for a keyword.
	Text []string
	// Weights is the relevance table. Every weighted field must be in Text.
	Weights []Weight
	Params  []Param
}

// Schema is the validated, immutable description of a searchable entity.
type Schema[T any] struct {
	entity  string
	fields  map[string]Field[T]
	filter  *FilterBuilder
	scorer  *Scorer[T]
	weights []Weight
}

// NewSchema validates cfg. Weighted fields must be text fields so that a
// record earning a score for a keyword is also admitted by that keyword.
func NewSchema[T any](cfg SchemaConfig[T]) (*Schema[T], error) {
	if cfg.Entity == "" {
		return nil, fmt.Errorf("schema: entity name is required")
	}

	fields := make(map[string]Field[T], len(cfg.Fields))
	refs := make(map[string]FieldRef, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if _, dup := fields[f.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %q", cfg.Entity, f.Name)
		}
		fields[f.Name] = f
		refs[f.Name] = FieldRef{Name: f.Name, Kind: f.Kind}
	}

	text := make([]FieldRef, 0, len(cfg.Text))
	inText := make(map[string]bool, len(cfg.Text))
	for _, name := range cfg.Text {
		f, ok := fields[name]
		if !ok || !f.Kind.Textual() {
			return nil, fmt.Errorf("schema %s: text field %q must be a declared scalar or list field", cfg.Entity, name)
		}
		text = append(text, refs[name])
		inText[name] = true
	}

	weighted := make([]weightedField[T], 0, len(cfg.Weights))
	for _, w := range cfg.Weights {
		f, ok := fields[w.Field]
		if !ok || !f.Kind.Textual() {
			return nil, fmt.Errorf("schema %s: weighted field %q must be a declared scalar or list field", cfg.Entity, w.Field)
		}
		if !inText[w.Field] {
			return nil, fmt.Errorf("schema %s: weighted field %q is not a text field", cfg.Entity, w.Field)
		}
		if w.Weight <= 0 {
			return nil, fmt.Errorf("schema %s: weight of %q must be positive", cfg.Entity, w.Field)
		}
		weighted = append(weighted, weightedField[T]{field: f, weight: w.Weight})
	}

	seen := make(map[string]bool, len(cfg.Params))
	for _, p := range cfg.Params {
		if seen[p.Name] {
			return nil, fmt.Errorf("schema %s: duplicate param %q", cfg.Entity, p.Name)
		}
		seen[p.Name] = true

		f, ok := fields[p.Field]
		if !ok {
			return nil, fmt.Errorf("schema %s: param %q targets unknown field %q", cfg.Entity, p.Name, p.Field)
		}
		if want := paramFieldKind(p.Kind); want != nil && !want(f.Kind) {
			return nil, fmt.Errorf("schema %s: param %q cannot target %s field %q", cfg.Entity, p.Name, f.Kind, p.Field)
		}
	}

	return &Schema[T]{
		entity:  cfg.Entity,
		fields:  fields,
		filter:  &FilterBuilder{params: append([]Param(nil), cfg.Params...), refs: refs, text: text},
		scorer:  &Scorer[T]{fields: weighted},
		weights: append([]Weight(nil), cfg.Weights...),
	}, nil
}

// MustSchema is NewSchema that panics; for package-level declarations.
func MustSchema[T any](cfg SchemaConfig[T]) *Schema[T] {
	s, err := NewSchema(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

func paramFieldKind(k ParamKind) func(Kind) bool {
	switch k {
	case ParamAnyOf:
		return Kind.Textual
	case ParamMin, ParamMax:
		return func(fk Kind) bool { return fk == Number }
	case ParamFlag:
		return func(fk Kind) bool { return fk == Flag }
	default:
		return func(Kind) bool { return false }
	}
}

// Entity returns the entity name.
func (s *Schema[T]) Entity() string { return s.entity }

// Filter returns the entity's filter builder.
func (s *Schema[T]) Filter() *FilterBuilder { return s.filter }

// Scorer returns the entity's relevance scorer.
func (s *Schema[T]) Scorer() *Scorer[T] { return s.scorer }

// Fields lists every declared field. Field names are also storage column names.
func (s *Schema[T]) Fields() []FieldRef {
	out := make([]FieldRef, 0, len(s.fields))
	for name, f := range s.fields {
		out = append(out, FieldRef{Name: name, Kind: f.Kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Field returns the named field.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Weights returns a copy of the relevance table.
func (s *Schema[T]) Weights() []Weight { return append([]Weight(nil), s.weights...) }

// Match evaluates p against rec in memory. Clauses naming unknown fields never
// match.
func (s *Schema[T]) Match(p Predicate, rec T) bool {
	for _, c := range p.clauses {
		if !s.matchClause(c, rec) {
			return false
		}
	}
	return true
}

func (s *Schema[T]) matchClause(c Clause, rec T) bool {
	switch c.Op {
	case OpAnyOf:
		f, ok := s.fields[c.Field.Name]
		if !ok || f.equal == nil {
			return false
		}
		for _, v := range c.Values {
			if f.equal(rec, v) {
				return true
			}
		}
		return false

	case OpBetween:
		f, ok := s.fields[c.Field.Name]
		if !ok || f.number == nil {
			return false
		}
		n := f.number(rec)
		if c.Min != nil && n < *c.Min {
			return false
		}
		if c.Max != nil && n > *c.Max {
			return false
		}
		return true

	case OpContains:
		for _, ref := range c.Fields {
			f, ok := s.fields[ref.Name]
			if !ok || f.contains == nil {
				continue
			}
			for _, needle := range c.Values {
				if f.contains(rec, strings.ToLower(needle)) {
					return true
				}
			}
		}
		return false

	case OpIs:
		f, ok := s.fields[c.Field.Name]
		if !ok || f.flag == nil {
			return false
		}
		return f.flag(rec) == c.Flag

	default:
		return false
	}
}
