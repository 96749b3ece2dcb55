package model

import (
	"errors"
	"fmt"
)

// ErrInvalidEnumValue is returned when a wire string matches no member of an enumerated field.
var ErrInvalidEnumValue = errors.New("invalid enum value")

// enumTable is a bidirectional lookup between enum members and their wire strings.
type enumTable[T ~string] struct {
	field  string
	byWire map[string]T
	toWire map[T]string
}

func newEnumTable[T ~string](field string, members ...T) enumTable[T] {
	t := enumTable[T]{
		field:  field,
		byWire: make(map[string]T, len(members)),
		toWire: make(map[T]string, len(members)),
	}
	for _, m := range members {
		t.byWire[string(m)] = m
		t.toWire[m] = string(m)
	}
	return t
}

func (t enumTable[T]) parse(s string) (T, error) {
	v, ok := t.byWire[s]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrInvalidEnumValue, t.field, s)
	}
	return v, nil
}

func (t enumTable[T]) wire(v T) string {
	if s, ok := t.toWire[v]; ok {
		return s
	}
	return string(v)
}

func (t enumTable[T]) valid(v T) bool {
	_, ok := t.toWire[v]
	return ok
}
