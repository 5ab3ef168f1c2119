// Package schemagen converts GConf schema files into the C settings table
// compiled into the builtin settings backend.
//
// Each <schema> entry contributes its applyto key, a one or two letter type
// code and its default value:
//
//	bool           b
//	int            i
//	anything else  ?
//
// List schemas are prefixed with "a" and typed by their list_type; their
// "[a, b]" style default is flattened to "a,b".
package schemagen

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
)

// typeCodes maps GConf value types to table type codes.
var typeCodes = map[string]string{
	"bool": "b",
	"int":  "i",
}

const (
	listType     = "list"
	listPrefix   = "a"
	unknownCode  = "?"
	tableDeclare = "static setting_t elems[] ="
)

// Entry is one row of the generated table.
type Entry struct {
	Key     string `json:"key" yaml:"key"`
	Type    string `json:"type" yaml:"type"`
	Default string `json:"default" yaml:"default"`
}

// schemaFile mirrors the parts of a .schemas document that are used.
type schemaFile struct {
	Schemas []schema `xml:"schemalist>schema"`
}

type schema struct {
	ApplyTo  *string `xml:"applyto"`
	Type     *string `xml:"type"`
	ListType *string `xml:"list_type"`
	Default  *string `xml:"default"`
}

// Parse reads schema entries from r. name identifies the source in errors.
func Parse(r io.Reader, name string) ([]Entry, error) {
	var f schemaFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
			"failed to parse schema file", err, map[string]any{"file": name})
	}

	entries := make([]Entry, 0, len(f.Schemas))
	for i, s := range f.Schemas {
		e, err := s.entry()
		if err != nil {
			return nil, mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				"invalid schema entry", err, map[string]any{"file": name, "index": i})
		}
		entries = append(entries, e)
	}

	slog.Debug("parsed schema file", slog.String("file", name), slog.Int("entries", len(entries)))
	return entries, nil
}

// ParseFile reads schema entries from the file at path.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		code := mceerrors.ErrCodeUnavailable
		if os.IsNotExist(err) {
			code = mceerrors.ErrCodeNotFound
		}
		return nil, mceerrors.WrapWithContext(code, "failed to open schema file", err, map[string]any{"file": path})
	}
	defer f.Close()

	return Parse(f, path)
}

// ParseFiles reads and concatenates the entries of all files in order.
func ParseFiles(paths ...string) ([]Entry, error) {
	var all []Entry
	for _, p := range paths {
		entries, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (s schema) entry() (Entry, error) {
	if s.ApplyTo == nil {
		return Entry{}, mceerrors.New(mceerrors.ErrCodeInvalidRequest, "missing applyto element")
	}
	if s.Type == nil {
		return Entry{}, mceerrors.New(mceerrors.ErrCodeInvalidRequest, "missing type element")
	}

	e := Entry{Key: strings.TrimSpace(*s.ApplyTo)}
	if s.Default != nil {
		e.Default = strings.TrimSpace(*s.Default)
	}

	typ, prefix := strings.TrimSpace(*s.Type), ""
	if typ == listType {
		if s.ListType == nil {
			return Entry{}, mceerrors.New(mceerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("list schema %s has no list_type", e.Key))
		}
		prefix = listPrefix
		typ = strings.TrimSpace(*s.ListType)
		e.Default = flattenList(e.Default)
	}

	code, ok := typeCodes[typ]
	if !ok {
		code = unknownCode
	}
	e.Type = prefix + code
	return e, nil
}

// flattenList turns "[a, b]" into "a,b".
func flattenList(v string) string {
	v = strings.NewReplacer("[", "", "]", "").Replace(v)
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

// cQuote escapes backslashes and double quotes for a C string literal.
var cQuote = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Write renders the C table for entries to w. A blank line is written per
// entry and one more before the declaration.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	for range entries {
		bw.WriteString("\n")
	}
	bw.WriteString("\n")
	bw.WriteString(tableDeclare + "\n")
	bw.WriteString("{\n")
	for _, e := range entries {
		fmt.Fprintf(bw, "  {\n")
		fmt.Fprintf(bw, "    .key  = \"%s\",\n", cQuote.Replace(e.Key))
		fmt.Fprintf(bw, "    .type = \"%s\",\n", cQuote.Replace(e.Type))
		fmt.Fprintf(bw, "    .def  = \"%s\",\n", cQuote.Replace(e.Default))
		fmt.Fprintf(bw, "  },\n")
	}
	bw.WriteString("};\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write settings table: %w", err)
	}
	return nil
}

// Table wraps entries so they can be handed to a serializer. Render produces
// the C source form.
type Table struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Render implements serializer.TextRenderer.
func (t *Table) Render(w io.Writer) error {
	return Write(w, t.Entries)
}
