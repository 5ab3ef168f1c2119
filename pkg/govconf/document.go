// Package govconf assembles CPU scaling governor config documents.
package govconf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/nemomobile/mce-buildtools/pkg/header"
)

// DocumentKind is the kind recorded in structured renderings.
const DocumentKind = "GovernorConfig"

// Setting is one numbered path/data pair.
type Setting struct {
	Index int    `json:"index" yaml:"index"`
	Path  string `json:"path" yaml:"path"`
	Data  string `json:"data" yaml:"data"`
}

// Section is a named, ordered list of settings.
type Section struct {
	Name     string    `json:"name" yaml:"name"`
	Settings []Setting `json:"settings" yaml:"settings"`
}

// Document is an ordered set of sections. Sections keep creation order and
// settings keep append order, so rendering is reproducible.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	// Comment is written as the first line of the text rendering.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	Sections []*Section `json:"sections" yaml:"sections"`

	index map[string]*Section
}

// NewDocument creates a document with the given sections pre-created in
// order, so they render even when nothing is appended to them.
func NewDocument(comment string, sections ...string) *Document {
	d := &Document{
		Header:  *header.New(header.WithKind(DocumentKind)),
		Comment: comment,
		index:   make(map[string]*Section),
	}
	for _, name := range sections {
		d.Section(name)
	}
	return d
}

// Section returns the named section, creating it at the end if needed.
func (d *Document) Section(name string) *Section {
	if d.index == nil {
		d.index = make(map[string]*Section)
	}
	if s, ok := d.index[name]; ok {
		return s
	}
	s := &Section{Name: name}
	d.index[name] = s
	d.Sections = append(d.Sections, s)
	return s
}

// Append adds a path/data pair to a section and returns the index it was
// given. Indices start at 1 and are scoped to the section.
func (d *Document) Append(section, path, data string) int {
	s := d.Section(section)
	n := len(s.Settings) + 1
	s.Settings = append(s.Settings, Setting{Index: n, Path: path, Data: data})
	return n
}

// Render writes the INI text form:
//
//	# comment
//
//	[Section]
//	path1=...
//	data1=...
//
func (d *Document) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if d.Comment != "" {
		bw.WriteString(d.Comment)
		bw.WriteString("\n\n")
	}

	for _, s := range d.Sections {
		bw.WriteString("[" + s.Name + "]\n")
		for _, st := range s.Settings {
			writeKey(bw, "path", st.Index, st.Path)
			writeKey(bw, "data", st.Index, st.Data)
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

func writeKey(bw *bufio.Writer, key string, n int, value string) {
	bw.WriteString(key)
	bw.WriteString(strconv.Itoa(n))
	bw.WriteByte('=')
	bw.WriteString(value)
	bw.WriteByte('\n')
}

// String returns the rendered text.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Render(&b)
	return b.String()
}
