package descriptor

import (
	"fmt"
	"reflect"
)

// ShapeKind enumerates the result shapes a bound method can have.
type ShapeKind uint8

const (
	// FireAndForget is a sync call with no value; the body is discarded.
	FireAndForget ShapeKind = iota
	// SyncValue is a sync call returning the decoded body.
	SyncValue
	// SyncRawResponse is a sync call returning the raw response.
	SyncRawResponse
	// AsyncValue is a future of a plain value. It cannot be produced and is
	// rejected by Extract.
	AsyncValue
	// AsyncRawResponse is a call returning a future of the raw response.
	AsyncRawResponse
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case SyncValue:
		return "sync-value"
	case SyncRawResponse:
		return "sync-raw-response"
	case AsyncValue:
		return "async-value"
	case AsyncRawResponse:
		return "async-raw-response"
	default:
		return "fire-and-forget"
	}
}

// ReturnShape is the normalized return of a method.
type ReturnShape struct {
	Kind ShapeKind
	// Value is the body type, or nil when the body is discarded.
	Value reflect.Type
}

// Async reports whether the call returns a pending handle.
func (s ReturnShape) Async() bool {
	return s.Kind == AsyncValue || s.Kind == AsyncRawResponse
}

// Raw reports whether the caller receives the response itself.
func (s ReturnShape) Raw() bool {
	return s.Kind == SyncRawResponse || s.Kind == AsyncRawResponse
}

// HasValue reports whether a response body must be materialized.
func (s ReturnShape) HasValue() bool {
	return s.Value != nil
}

// String renders the shape with its value type.
func (s ReturnShape) String() string {
	if s.Value == nil {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Value)
}

// ShapeOf derives the return shape of a declared type reference.
//
//	Future[Response[T]]  async raw, T or none
//	Future[T]            async value (unsupported)
//	Response[T]          sync raw, T or none
//	T                    sync value
//	void, ?              fire and forget
//
// A wrapper nested where a plain type is expected is an error.
func ShapeOf(r TypeRef) (ReturnShape, error) {
	switch r.kind {
	case refFuture:
		inner := r.innerOrVoid()
		if inner.kind == refResponse {
			v, err := valueOf(inner.innerOrVoid())
			return ReturnShape{Kind: AsyncRawResponse, Value: v}, err
		}
		v, err := valueOf(inner)
		return ReturnShape{Kind: AsyncValue, Value: v}, err
	case refResponse:
		v, err := valueOf(r.innerOrVoid())
		return ReturnShape{Kind: SyncRawResponse, Value: v}, err
	case refType:
		return ReturnShape{Kind: SyncValue, Value: r.typ}, nil
	default:
		return ReturnShape{Kind: FireAndForget}, nil
	}
}

func valueOf(r TypeRef) (reflect.Type, error) {
	switch r.kind {
	case refType:
		return r.typ, nil
	case refVoid, refWildcard:
		return nil, nil
	default:
		return nil, fmt.Errorf("nested %s is not a body type", r)
	}
}
