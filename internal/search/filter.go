package search

import (
	"strconv"
	"strings"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// AllValues disables a list filter when passed as its value.
const AllValues = "all"

// FilterBuilder turns query parameters and keywords into a Predicate.
type FilterBuilder struct {
	params []Param
	refs   map[string]FieldRef
	text   []FieldRef
}

// Params returns the accepted query parameters in declaration order.
func (b *FilterBuilder) Params() []Param {
	return append([]Param(nil), b.params...)
}

// TextFields returns the fields keywords are matched against.
func (b *FilterBuilder) TextFields() []FieldRef {
	return append([]FieldRef(nil), b.text...)
}

// Build folds every present parameter into a predicate, followed by one
// keyword clause when tokens is non-empty. Unknown parameter names are
// ignored. A malformed number or flag is an invalid-input error.
func (b *FilterBuilder) Build(filters map[string]string, tokens []string) (Predicate, error) {
	var p Predicate

	type bounds struct{ min, max *float64 }
	ranges := make(map[string]*bounds)
	var rangeOrder []string

	for _, param := range b.params {
		raw := strings.TrimSpace(filters[param.Name])
		if raw == "" {
			continue
		}
		ref := b.refs[param.Field]

		switch param.Kind {
		case ParamAnyOf:
			values := SplitList(raw)
			if len(values) == 0 {
				continue
			}
			p = p.And(AnyOf(ref, values...))

		case ParamMin, ParamMax:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Predicate{}, apperrors.InvalidInput(param.Name + " must be a number")
			}
			r, ok := ranges[param.Field]
			if !ok {
				r = &bounds{}
				ranges[param.Field] = r
				rangeOrder = append(rangeOrder, param.Field)
			}
			if param.Kind == ParamMin {
				r.min = &n
			} else {
				r.max = &n
			}

		case ParamFlag:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return Predicate{}, apperrors.InvalidInput(param.Name + " must be true or false")
			}
			p = p.And(Is(ref, v))
		}
	}

	for _, field := range rangeOrder {
		r := ranges[field]
		p = p.And(Between(b.refs[field], r.min, r.max))
	}

	if len(tokens) > 0 && len(b.text) > 0 {
		p = p.And(Contains(b.text, tokens...))
	}
	return p, nil
}

// SplitList parses a comma-separated filter value. The sentinel "all", in any
// case, yields nil.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AllValues) {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
