package descriptor

import (
	"fmt"
	"reflect"
)

type refKind uint8

const (
	refVoid refKind = iota
	refWildcard
	refType
	refFuture
	refResponse
)

// TypeRef is a declared return type. The zero value is Void.
type TypeRef struct {
	kind  refKind
	typ   reflect.Type
	inner *TypeRef
}

// Void declares no value.
func Void() TypeRef { return TypeRef{kind: refVoid} }

// Wildcard declares an unknown value whose body is discarded.
func Wildcard() TypeRef { return TypeRef{kind: refWildcard} }

// Of declares a plain value of type t. A nil t is Void.
func Of(t reflect.Type) TypeRef {
	if t == nil {
		return Void()
	}
	return TypeRef{kind: refType, typ: t}
}

// TypeOf declares a plain value of type T.
func TypeOf[T any]() TypeRef { return Of(reflect.TypeFor[T]()) }

// FutureOf declares a pending result wrapping inner.
func FutureOf(inner TypeRef) TypeRef { return TypeRef{kind: refFuture, inner: &inner} }

// ResponseOf declares a raw response whose body is inner.
func ResponseOf(inner TypeRef) TypeRef { return TypeRef{kind: refResponse, inner: &inner} }

// IsNone reports whether the reference carries no value type.
func (r TypeRef) IsNone() bool {
	return r.kind == refVoid || r.kind == refWildcard
}

// Type returns the plain value type, or nil for anything else.
func (r TypeRef) Type() reflect.Type {
	if r.kind != refType {
		return nil
	}
	return r.typ
}

// String renders the reference in a compact Go-like notation.
func (r TypeRef) String() string {
	switch r.kind {
	case refWildcard:
		return "?"
	case refType:
		return r.typ.String()
	case refFuture:
		return fmt.Sprintf("Future[%s]", r.inner)
	case refResponse:
		return fmt.Sprintf("Response[%s]", r.inner)
	default:
		return "void"
	}
}

func (r TypeRef) innerOrVoid() TypeRef {
	if r.inner == nil {
		return Void()
	}
	return *r.inner
}
