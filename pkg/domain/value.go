package domain

import (
	"context"
	"fmt"
	"sort"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindLiteral values are substituted as-is.
	KindLiteral ValueKind = iota
	// KindOperation values are invoked with the directive's arguments.
	KindOperation
)

func (k ValueKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindOperation:
		return "operation"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Operation is a parameterized template function.
type Operation func(ctx context.Context, args ...any) (any, error)

// Value is one entry of a template function table: either a literal or an operation.
type Value struct {
	kind    ValueKind
	literal any
	op      Operation
}

// Literal wraps a constant value.
func Literal(v any) Value {
	return Value{kind: KindLiteral, literal: v}
}

// Op wraps an operation.
func Op(fn Operation) Value {
	return Value{kind: KindOperation, op: fn}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Literal returns the wrapped constant. It is nil for operations.
func (v Value) Literal() any {
	return v.literal
}

// Call invokes the value. Literals return themselves and ignore arguments.
func (v Value) Call(ctx context.Context, args ...any) (any, error) {
	if v.kind == KindLiteral {
		return v.literal, nil
	}
	if v.op == nil {
		return nil, fmt.Errorf("operation is not defined")
	}
	return v.op(ctx, args...)
}

// Table maps template function names to values.
type Table map[string]Value

// Set registers a value under name, replacing any previous one.
func (t Table) Set(name string, v Value) {
	t[name] = v
}

// Lookup returns the value registered under name.
func (t Table) Lookup(name string) (Value, bool) {
	v, ok := t[name]
	return v, ok
}

// Names returns the registered names in lexical order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
