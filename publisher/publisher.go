package publisher

import (
	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/transport"
)

// HeaderWriter receives the headers a publisher needs, typically the
// content type. *transport.RequestBuilder satisfies it.
type HeaderWriter interface {
	Header(name, value string)
}

var _ HeaderWriter = (*transport.RequestBuilder)(nil)

// Publisher produces the payload of one call. It may add headers to h but
// must not touch anything else of the request. args are the call arguments
// in declaration order.
type Publisher func(h HeaderWriter, args []any) (transport.Body, error)

// Context is what a Factory sees at bind time.
type Context struct {
	// Method is the normalized method being compiled.
	Method *descriptor.Method
	// Params are the method's Body parameters in declaration order.
	Params []descriptor.Parameter
	// Log receives bind-time warnings.
	Log *logger.Logger
}

// NewContext collects the Body parameters of m.
func NewContext(m *descriptor.Method, log *logger.Logger) Context {
	if log == nil {
		log = logger.Get(logger.ComponentName)
	}
	return Context{Method: m, Params: m.ByRole(descriptor.RoleBody), Log: log}
}

// Factory compiles a Publisher for one method. A returned error fails the
// bind of the whole descriptor set.
type Factory func(c Context) (Publisher, error)

// skip logs a Body parameter the strategy cannot encode.
func (c Context) skip(id string, p descriptor.Parameter) {
	c.Log.Warn("body parameter skipped: sort not yet supported", logger.Fields(
		logger.FieldMethod, c.Method.Name,
		logger.FieldPublisher, id,
		logger.FieldParam, p.Name,
		logger.FieldSort, p.Sort.String(),
		logger.FieldRole, p.Role.String(),
	))
}
