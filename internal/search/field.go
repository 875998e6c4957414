package search

import "strings"

// Kind is the shape of a record attribute.
type Kind uint8

const (
	// Scalar is a single string value.
	Scalar Kind = iota + 1
	// List is a list of string values; a token matches when it matches any element.
	List
	// Number is a numeric value usable in range clauses.
	Number
	// Flag is a boolean value.
	Flag
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Number:
		return "number"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Textual reports whether values of this kind are strings.
func (k Kind) Textual() bool { return k == Scalar || k == List }

// Field is a named accessor over T. Text fields carry their match functions,
// fixed when the field is declared.
type Field[T any] struct {
	Name string
	Kind Kind

	// equal reports equality after lower-casing both sides (membership for
	// lists), matching lower() in the postgres store.
	equal func(rec T, value string) bool
	// contains reports a substring match; needle is already lower-cased.
	contains func(rec T, needle string) bool
	scalar   func(rec T) string
	number   func(rec T) float64
	flag     func(rec T) bool
}

// ScalarField declares a single-valued string attribute.
func ScalarField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name:   name,
		Kind:   Scalar,
		scalar: get,
		equal: func(rec T, value string) bool {
			return strings.ToLower(get(rec)) == strings.ToLower(value)
		},
		contains: func(rec T, needle string) bool {
			return strings.Contains(strings.ToLower(get(rec)), needle)
		},
	}
}

// ListField declares a multi-valued string attribute such as a feature list.
func ListField[T any](name string, get func(T) []string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: List,
		equal: func(rec T, value string) bool {
			for _, v := range get(rec) {
				if strings.ToLower(v) == strings.ToLower(value) {
					return true
				}
			}
			return false
		},
		contains: func(rec T, needle string) bool {
			for _, v := range get(rec) {
				if strings.Contains(strings.ToLower(v), needle) {
					return true
				}
			}
			return false
		},
	}
}

// NumberField declares a numeric attribute.
func NumberField[T any](name string, get func(T) float64) Field[T] {
	return Field[T]{Name: name, Kind: Number, number: get}
}

// FlagField declares a boolean attribute.
func FlagField[T any](name string, get func(T) bool) Field[T] {
	return Field[T]{Name: name, Kind: Flag, flag: get}
}

// Equal reports whether the field equals value ignoring case. It is false for
// non-text fields.
func (f Field[T]) Equal(rec T, value string) bool {
	if f.equal == nil {
		return false
	}
	return f.equal(rec, value)
}

// Text returns the value of a scalar field; ok is false for other kinds.
func (f Field[T]) Text(rec T) (value string, ok bool) {
	if f.scalar == nil {
		return "", false
	}
	return f.scalar(rec), true
}
