package descriptor

import (
	"fmt"

	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/validation"
)

// Extract validates a declaration and normalizes it into a Method.
//
// Fatal problems are returned as *errors.AppError with a bind-time code.
// Non-fatal ones are logged as warnings on log, which may be nil to use the
// restbind component logger: a parameter whose sort is only partially
// supported, and a sync error declared on an async method.
func Extract(d Declaration, log *logger.Logger) (*Method, error) {
	if log == nil {
		log = logger.Get(logger.ComponentName)
	}
	if err := validation.Validate(d); err != nil {
		return nil, errors.InvalidDescriptor(d.Name, err.Error()).WithCause(err)
	}

	m := &Method{
		Name:              d.Name,
		Verb:              NormalizeVerb(d.Verb),
		Path:              d.Path,
		Headers:           append([]Header(nil), d.Headers...),
		DeclaresSyncError: d.DeclaresSyncError,
	}

	publisher, fixed := DefaultPublisher(m.Verb)
	if d.Publisher != "" {
		if fixed && d.Publisher != publisher {
			return nil, errors.InvalidDescriptor(m.Name,
				fmt.Sprintf("%s requests always use the %q publisher (got %q)", m.Verb, publisher, d.Publisher))
		}
		publisher = d.Publisher
	}
	m.Publisher = publisher

	shape, err := ShapeOf(d.Returns)
	if err != nil {
		return nil, errors.UnsupportedReturn(m.Name, err.Error())
	}
	if shape.Kind == AsyncValue {
		return nil, errors.UnsupportedReturn(m.Name,
			fmt.Sprintf("a future must wrap a raw response (got %s)", d.Returns))
	}
	m.Return = shape

	switch {
	case !shape.Async() && !d.DeclaresSyncError:
		return nil, errors.MissingSyncError(m.Name)
	case shape.Async() && d.DeclaresSyncError:
		log.Warn("sync error will never be raised from an async method",
			logger.Fields(logger.FieldMethod, m.Name))
	}

	if m.Verb == VerbHead && shape.HasValue() {
		return nil, errors.HeadWithValue(m.Name)
	}

	params, slots, err := extractParams(m.Name, d.Params, log)
	if err != nil {
		return nil, err
	}
	m.Params = params
	m.Slots = slots

	return m, nil
}

func extractParams(method string, decls []Param, log *logger.Logger) ([]Parameter, int, error) {
	params := make([]Parameter, len(decls))
	seenPath := make(map[string]bool)
	slot := 1 // slot 0 is the receiver

	for i, d := range decls {
		p := Parameter{Index: i, Slot: slot, Type: d.Type}

		switch {
		case d.Sort != nil:
			if !d.Sort.Valid() {
				return nil, 0, errors.InvalidDescriptor(method, fmt.Sprintf("parameter %d has an invalid sort", i))
			}
			p.Sort = *d.Sort
		case d.Type != nil:
			p.Sort = SortOf(d.Type)
		default:
			return nil, 0, errors.InvalidDescriptor(method, fmt.Sprintf("parameter %d has neither a type nor a sort", i))
		}

		for _, tag := range d.Tags {
			if tag.Role == RoleHeader && tag.Value != "" {
				return nil, 0, errors.HeaderConflict(method, tag.Name)
			}
		}
		for _, tag := range d.Tags {
			if tag.Role == RoleNone {
				continue
			}
			p.Role = tag.Role
			p.Name = tag.Name
			break
		}

		if p.Role != RoleNone && p.Name == "" {
			return nil, 0, errors.InvalidDescriptor(method,
				fmt.Sprintf("%s parameter %d has no name", p.Role, i))
		}
		if p.Role == RolePath {
			if seenPath[p.Name] {
				return nil, 0, errors.InvalidDescriptor(method,
					fmt.Sprintf("path parameter %q declared more than once", p.Name))
			}
			seenPath[p.Name] = true
		}

		if p.Sort.IsExperimental() {
			log.Warn("parameter sort not yet supported", logger.Fields(
				logger.FieldMethod, method,
				logger.FieldParam, paramLabel(p),
				logger.FieldSort, p.Sort.String(),
				logger.FieldRole, p.Role.String(),
			))
		}

		params[i] = p
		slot += p.Sort.Width()
	}
	return params, slot, nil
}

func paramLabel(p Parameter) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", p.Index)
}
