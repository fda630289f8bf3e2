package descriptor

import (
	"reflect"
	"strings"
)

// Method is the normalized, immutable descriptor of one method.
type Method struct {
	Name      string
	Verb      string
	Path      string
	Publisher string
	Headers   []Header
	Params    []Parameter
	Return    ReturnShape
	// DeclaresSyncError mirrors the declaration. It is always true for sync methods.
	DeclaresSyncError bool
	// Slots is one past the last slot used, counting the receiver at slot 0.
	Slots int
}

// Parameter is a normalized parameter.
type Parameter struct {
	// Index is the position of the argument in a call.
	Index int
	// Slot is the storage offset, accounting for earlier widths and the receiver.
	Slot int
	Name string
	Role Role
	Sort Sort
	Type reflect.Type
}

// Arity is the number of arguments a call must supply.
func (m *Method) Arity() int {
	return len(m.Params)
}

// ByRole returns the parameters with role r in declaration order.
func (m *Method) ByRole(r Role) []Parameter {
	var out []Parameter
	for _, p := range m.Params {
		if p.Role == r {
			out = append(out, p)
		}
	}
	return out
}

// PathParam returns the path parameter named name.
func (m *Method) PathParam(name string) (Parameter, bool) {
	for _, p := range m.Params {
		if p.Role == RolePath && p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// String renders the method as "name(VERB /path)".
func (m *Method) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("(")
	b.WriteString(m.Verb)
	b.WriteString(" ")
	b.WriteString(m.Path)
	b.WriteString(")")
	return b.String()
}
