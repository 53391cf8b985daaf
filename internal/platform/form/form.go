// Package form models semi-structured request payloads where a field may
// arrive as plain text, a JSON-encoded value, or an uploaded file. The
// ambiguity is resolved once at the boundary into a tagged Value; everything
// downstream works with typed accessors instead of per-field type checks.
package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// ErrUnsupportedContentType indicates a request body this API cannot decode.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// maxPartSize caps a single decoded form part.
const maxPartSize = 8 << 20 // 8 MB

// File is an uploaded file part.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Value is a tagged variant: text, file, or missing.
type Value struct {
	text *string
	file *File
}

// Text constructs a text value.
func Text(s string) Value {
	return Value{text: &s}
}

// FileValue constructs a file value.
func FileValue(f *File) Value {
	return Value{file: f}
}

// Missing reports whether the field was absent from the payload.
func (v Value) Missing() bool {
	return v.text == nil && v.file == nil
}

// AsText returns the text content and whether the value is text.
func (v Value) AsText() (string, bool) {
	if v.text == nil {
		return "", false
	}
	return *v.text, true
}

// AsFile returns the file content and whether the value is a file.
func (v Value) AsFile() (*File, bool) {
	if v.file == nil {
		return nil, false
	}
	return v.file, true
}

// Fields maps field names to their raw values.
type Fields map[string]Value

// Get returns the value for name, or a missing value when absent.
func (f Fields) Get(name string) Value {
	return f[name]
}

// Names returns all field names present in the payload.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}

// Parse decodes a request body into Fields based on its Content-Type.
// JSON objects and multipart forms are supported; an absent content type is
// treated as JSON.
func Parse(contentType string, body []byte) (Fields, error) {
	if strings.TrimSpace(contentType) == "" {
		return ParseJSON(body)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	switch {
	case mediaType == "application/json":
		return ParseJSON(body)
	case mediaType == "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("%w: multipart without boundary", ErrUnsupportedContentType)
		}
		return ParseMultipart(body, boundary)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, mediaType)
	}
}

// ParseJSON decodes a JSON object body. String members become their decoded
// text; any other member kind keeps its raw JSON encoding as text, so nested
// values (like a label→url object) stay parseable downstream.
func ParseJSON(body []byte) (Fields, error) {
	if len(body) == 0 {
		return Fields{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	fields := make(Fields, len(raw))
	for name, msg := range raw {
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			fields[name] = Text(s)
			continue
		}
		fields[name] = Text(string(msg))
	}
	return fields, nil
}

// ParseMultipart decodes a multipart/form-data body. Parts with a filename
// become file values; others become text. When a key repeats, the first part
// wins.
func ParseMultipart(body []byte, boundary string) (Fields, error) {
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	fields := Fields{}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode multipart body: %w", err)
		}

		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		data, err := io.ReadAll(io.LimitReader(part, maxPartSize))
		closeErr := part.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %q: %w", name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close part %q: %w", name, closeErr)
		}

		if _, exists := fields[name]; exists {
			continue
		}
		if filename := part.FileName(); filename != "" {
			fields[name] = FileValue(&File{
				Filename:    filename,
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			})
			continue
		}
		fields[name] = Text(string(data))
	}
	return fields, nil
}
