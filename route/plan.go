package route

import (
	"fmt"
	"strings"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/logger"
)

// Plan assembles the request target (path plus query) of one method.
// It is immutable and safe for concurrent use.
type Plan struct {
	template string
	static   bool
	literal  string
	steps    []step
	sizeHint int
}

// step appends a literal, then the argument at index arg when arg >= 0.
type step struct {
	literal string
	arg     int
	name    string
	text    descriptor.TextFunc
	escape  bool
}

// ArgumentError reports a call argument the plan could not render.
type ArgumentError struct {
	Param string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Compile builds the plan for m. Placeholders must each match one path
// parameter whose sort has a textual form. Query parameters of other sorts
// are skipped with a warning on log.
func Compile(m *descriptor.Method, log *logger.Logger) (*Plan, error) {
	if log == nil {
		log = logger.Get(logger.ComponentName)
	}
	frags, err := Parse(m.Path)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.WithDetail(logger.FieldMethod, m.Name)
		}
		return nil, err
	}

	b := &planBuilder{}
	used := make(map[string]bool)

	for _, f := range frags {
		if !f.Dynamic {
			b.literal(f.Text)
			continue
		}
		p, ok := m.PathParam(f.Text)
		if !ok {
			return nil, errors.UnmatchedPlaceholder(m.Name, f.Text)
		}
		text, ok := descriptor.Text(p.Sort)
		if !ok {
			return nil, errors.UnsupportedType(m.Name, p.Name, p.Sort.String()).
				WithDetail(logger.FieldRole, p.Role.String())
		}
		used[p.Name] = true
		b.value(p, text, false)
	}

	for _, p := range m.ByRole(descriptor.RolePath) {
		if !used[p.Name] {
			log.Warn("path parameter not referenced by the template", logger.Fields(
				logger.FieldMethod, m.Name,
				logger.FieldParam, p.Name,
			))
		}
	}

	sep := byte('?')
	if strings.IndexByte(m.Path, '?') >= 0 {
		sep = '&'
	}
	for _, p := range m.ByRole(descriptor.RoleQuery) {
		text, ok := descriptor.Text(p.Sort)
		if !ok {
			log.Warn("query parameter skipped: sort not yet supported", logger.Fields(
				logger.FieldMethod, m.Name,
				logger.FieldParam, p.Name,
				logger.FieldSort, p.Sort.String(),
				logger.FieldRole, p.Role.String(),
			))
			continue
		}
		b.literal(string(sep) + Escape(p.Name) + "=")
		b.value(p, text, p.Sort == descriptor.SortString)
		sep = '&'
	}

	return b.build(m.Path), nil
}

// Static returns the literal target when the plan needs no arguments.
func (p *Plan) Static() (string, bool) {
	return p.literal, p.static
}

// Template returns the path template the plan was compiled from.
func (p *Plan) Template() string {
	return p.template
}

// Build renders the target for one call. args are the call arguments in
// declaration order.
func (p *Plan) Build(args []any) (string, error) {
	if p.static {
		return p.literal, nil
	}

	var sb strings.Builder
	sb.Grow(p.sizeHint)
	for _, s := range p.steps {
		sb.WriteString(s.literal)
		if s.arg < 0 {
			continue
		}
		v, err := s.text(args[s.arg])
		if err != nil {
			return "", &ArgumentError{Param: s.name, Err: err}
		}
		if s.escape {
			v = Escape(v)
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}

type planBuilder struct {
	steps []step
}

// literal appends text, merging it into a trailing literal-only step.
func (b *planBuilder) literal(text string) {
	if n := len(b.steps); n > 0 && b.steps[n-1].arg < 0 {
		b.steps[n-1].literal += text
		return
	}
	b.steps = append(b.steps, step{literal: text, arg: -1})
}

// value attaches an argument to the trailing literal step, or opens a new one.
func (b *planBuilder) value(p descriptor.Parameter, text descriptor.TextFunc, escape bool) {
	n := len(b.steps)
	if n == 0 || b.steps[n-1].arg >= 0 {
		b.steps = append(b.steps, step{arg: -1})
		n++
	}
	s := &b.steps[n-1]
	s.arg = p.Index
	s.name = p.Name
	s.text = text
	s.escape = escape
}

func (b *planBuilder) build(template string) *Plan {
	plan := &Plan{template: template, steps: b.steps}

	dynamic := false
	for _, s := range b.steps {
		plan.sizeHint += len(s.literal)
		if s.arg >= 0 {
			dynamic = true
			plan.sizeHint += 16
		}
	}
	if !dynamic {
		plan.static = true
		plan.literal = template
		plan.steps = nil
	}
	return plan
}
