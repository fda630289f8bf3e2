package publisher

import (
	"io"
	"strings"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/route"
	"github.com/kbukum/restbind/transport"
)

const (
	// FormContentType is sent by the url-encoded strategy.
	FormContentType = "application/x-www-form-urlencoded"
	// Boundary separates multipart parts. It is fixed.
	Boundary = "boundary"
	// MultipartContentType is sent by the multipart strategy.
	MultipartContentType = "multipart/form-data; boundary=" + Boundary
)

// field is one encodable Body parameter.
type field struct {
	index  int
	name   string
	text   descriptor.TextFunc
	escape bool
}

func (f field) render(args []any) (string, error) {
	v, err := f.text(args[f.index])
	if err != nil {
		return "", &route.ArgumentError{Param: f.name, Err: err}
	}
	if f.escape {
		v = route.Escape(v)
	}
	return v, nil
}

// NoBody publishes an empty payload.
func NoBody(Context) (Publisher, error) {
	return func(HeaderWriter, []any) (transport.Body, error) {
		return transport.NoBody, nil
	}, nil
}

// URLEncoded publishes "&name=value" for every Body parameter with a
// textual form. Names and string values are percent-encoded.
func URLEncoded(c Context) (Publisher, error) {
	var fields []field
	var prefixes []string
	for _, p := range c.Params {
		text, ok := descriptor.Text(p.Sort)
		if !ok {
			c.skip(descriptor.PublisherURLEncoded, p)
			continue
		}
		fields = append(fields, field{index: p.Index, name: p.Name, text: text, escape: p.Sort == descriptor.SortString})
		prefixes = append(prefixes, "&"+route.Escape(p.Name)+"=")
	}

	return func(h HeaderWriter, args []any) (transport.Body, error) {
		h.Header("Content-Type", FormContentType)
		var sb strings.Builder
		for i, f := range fields {
			v, err := f.render(args)
			if err != nil {
				return transport.NoBody, err
			}
			sb.WriteString(prefixes[i])
			sb.WriteString(v)
		}
		return transport.TextBody(sb.String()), nil
	}, nil
}

// fieldNameEscaper percent-encodes the characters that would end a quoted
// form-data name or its header line.
var fieldNameEscaper = strings.NewReplacer(`"`, "%22", "\r", "%0D", "\n", "%0A")

// Multipart publishes one form-data part per Body parameter with a textual
// form. Other sorts are accepted and contribute no part. The payload is a
// chain of readers over the rendered parts.
func Multipart(c Context) (Publisher, error) {
	var fields []field
	var heads []string
	for _, p := range c.Params {
		text, ok := descriptor.Text(p.Sort)
		if !ok {
			c.skip(descriptor.PublisherMultipart, p)
			continue
		}
		fields = append(fields, field{index: p.Index, name: p.Name, text: text})
		heads = append(heads, "--"+Boundary+"\r\nContent-Disposition: form-data; name=\""+fieldNameEscaper.Replace(p.Name)+"\"\r\n\r\n")
	}
	const crlf = "\r\n"
	const terminator = "--" + Boundary + "--\r\n"

	return func(h HeaderWriter, args []any) (transport.Body, error) {
		h.Header("Content-Type", MultipartContentType)
		parts := make([]string, 0, 3*len(fields)+1)
		var length int64
		for i, f := range fields {
			v, err := f.render(args)
			if err != nil {
				return transport.NoBody, err
			}
			parts = append(parts, heads[i], v, crlf)
			length += int64(len(heads[i]) + len(v) + len(crlf))
		}
		parts = append(parts, terminator)
		length += int64(len(terminator))

		open := func() io.Reader {
			readers := make([]io.Reader, len(parts))
			for i, p := range parts {
				readers[i] = strings.NewReader(p)
			}
			return io.MultiReader(readers...)
		}
		return transport.Body{Reader: open(), Length: length, Reopen: open}, nil
	}, nil
}
