package executor

import (
	"fmt"
	"reflect"
	"time"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/observability"
	"github.com/kbukum/restbind/publisher"
	"github.com/kbukum/restbind/route"
	"github.com/kbukum/restbind/transport"
)

var stringType = reflect.TypeFor[string]()

// Options configures compilation.
type Options struct {
	// Registry resolves body publishers. Nil uses publisher.Default().
	Registry *publisher.Registry
	// Log receives bind-time warnings. Nil uses the restbind logger.
	Log *logger.Logger
	// Instruments records calls. Nil records nothing.
	Instruments *observability.Instruments
}

// Executor is the compiled routine of one method. It is immutable and safe
// for concurrent use.
type Executor struct {
	method  *descriptor.Method
	plan    *route.Plan
	headers []headerStep
	publish publisher.Publisher
	handler transport.BodyHandler
	// value converts the body string to a named string type; nil for string.
	value reflect.Type
	inst  *observability.Instruments
}

// headerStep is one dynamic Header parameter.
type headerStep struct {
	index int
	name  string
	text  descriptor.TextFunc
}

// Compile builds the executor of m. Failures are *errors.AppError values
// with a bind-time code.
func Compile(m *descriptor.Method, opts Options) (*Executor, error) {
	start := time.Now()
	log := opts.Log
	if log == nil {
		log = logger.Get(logger.ComponentName)
	}
	registry := opts.Registry
	if registry == nil {
		registry = publisher.Default()
	}

	e := &Executor{method: m, inst: opts.Instruments}

	handler, value, err := responseMapping(m)
	if err != nil {
		return nil, err
	}
	e.handler, e.value = handler, value

	if e.plan, err = route.Compile(m, log); err != nil {
		return nil, err
	}

	for _, p := range m.ByRole(descriptor.RoleHeader) {
		text, ok := descriptor.Text(p.Sort)
		if !ok {
			log.Warn("header parameter skipped: sort not yet supported", logger.Fields(
				logger.FieldMethod, m.Name,
				logger.FieldParam, p.Name,
				logger.FieldSort, p.Sort.String(),
				logger.FieldRole, p.Role.String(),
			))
			continue
		}
		e.headers = append(e.headers, headerStep{index: p.Index, name: p.Name, text: text})
	}

	if e.publish, err = registry.Resolve(publisher.NewContext(m, log)); err != nil {
		return nil, err
	}

	_, static := e.plan.Static()
	log.Debug("method compiled", logger.Merge(
		logger.Fields(
			logger.FieldMethod, m.Name,
			logger.FieldVerb, m.Verb,
			logger.FieldURI, m.Path,
			logger.FieldPublisher, m.Publisher,
			"shape", m.Return.String(),
			"static", static,
		),
		logger.DurationFields("compile", time.Since(start)),
	))
	return e, nil
}

// responseMapping fixes how a response body is materialized. Only string
// bodies are supported; none discards the body unread.
func responseMapping(m *descriptor.Method) (transport.BodyHandler, reflect.Type, error) {
	v := m.Return.Value
	if v == nil {
		return transport.DiscardBody, nil, nil
	}
	if v.Kind() != reflect.String {
		return nil, nil, errors.UnsupportedReturn(m.Name,
			fmt.Sprintf("response body type %s is not supported, only string", v))
	}
	if v == stringType {
		return transport.StringBody, nil, nil
	}
	return transport.StringBody, v, nil
}

// Method returns the descriptor the executor was compiled from.
func (e *Executor) Method() *descriptor.Method {
	return e.method
}

// Plan returns the compiled target plan.
func (e *Executor) Plan() *route.Plan {
	return e.plan
}
