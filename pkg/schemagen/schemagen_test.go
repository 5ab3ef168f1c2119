package schemagen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const displaySchemas = `<?xml version="1.0"?>
<gconfschemafile>
  <schemalist>
    <schema>
      <key>/schemas/system/osso/dsm/display/display_brightness</key>
      <applyto>/system/osso/dsm/display/display_brightness</applyto>
      <owner>mce</owner>
      <type>int</type>
      <default>3</default>
    </schema>
    <schema>
      <key>/schemas/system/osso/dsm/display/use_low_power_mode</key>
      <applyto>/system/osso/dsm/display/use_low_power_mode</applyto>
      <owner>mce</owner>
      <type>bool</type>
      <default>false</default>
    </schema>
    <schema>
      <key>/schemas/system/osso/dsm/display/possible_display_blank_timeouts</key>
      <applyto>/system/osso/dsm/display/possible_display_blank_timeouts</applyto>
      <owner>mce</owner>
      <type>list</type>
      <list_type>int</list_type>
      <default>[3, 10, 15]</default>
    </schema>
    <schema>
      <applyto>/system/osso/dsm/display/color_profile</applyto>
      <type>string</type>
      <default>normal</default>
    </schema>
  </schemalist>
</gconfschemafile>
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(displaySchemas), "display.schemas")
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Key: "/system/osso/dsm/display/display_brightness", Type: "i", Default: "3"},
		{Key: "/system/osso/dsm/display/use_low_power_mode", Type: "b", Default: "false"},
		{Key: "/system/osso/dsm/display/possible_display_blank_timeouts", Type: "ai", Default: "3,10,15"},
		{Key: "/system/osso/dsm/display/color_profile", Type: "?", Default: "normal"},
	}, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "malformed xml",
			input:   "<gconfschemafile><schemalist>",
			wantMsg: "failed to parse schema file",
		},
		{
			name:    "missing applyto",
			input:   "<gconfschemafile><schemalist><schema><type>int</type></schema></schemalist></gconfschemafile>",
			wantMsg: "missing applyto",
		},
		{
			name:    "missing type",
			input:   "<gconfschemafile><schemalist><schema><applyto>/a</applyto></schema></schemalist></gconfschemafile>",
			wantMsg: "missing type",
		},
		{
			name:    "list without list_type",
			input:   "<gconfschemafile><schemalist><schema><applyto>/a</applyto><type>list</type></schema></schemalist></gconfschemafile>",
			wantMsg: "no list_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "broken.schemas")
			require.Error(t, err)
			assert.True(t, mceerrors.HasCode(err, mceerrors.ErrCodeInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "broken.schemas")
		})
	}
}

func TestParse_MissingDefault(t *testing.T) {
	in := "<gconfschemafile><schemalist><schema><applyto>/a</applyto><type>bool</type></schema></schemalist></gconfschemafile>"
	got, err := Parse(strings.NewReader(in), "x")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "/a", Type: "b"}}, got)
}

func TestFlattenList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[3, 10, 15]", "3,10,15"},
		{"[]", ""},
		{"[ a ,b]", "a,b"},
		{"single", "single"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, flattenList(tt.in))
		})
	}
}

func TestWrite(t *testing.T) {
	entries := []Entry{
		{Key: "/a/int", Type: "i", Default: "3"},
		{Key: "/a/str", Type: "?", Default: `say "hi" \o/`},
	}

	var out bytes.Buffer
	require.NoError(t, Write(&out, entries))

	want := "\n\n\n" +
		"static setting_t elems[] =\n" +
		"{\n" +
		"  {\n" +
		"    .key  = \"/a/int\",\n" +
		"    .type = \"i\",\n" +
		"    .def  = \"3\",\n" +
		"  },\n" +
		"  {\n" +
		"    .key  = \"/a/str\",\n" +
		"    .type = \"?\",\n" +
		"    .def  = \"say \\\"hi\\\" \\\\o/\",\n" +
		"  },\n" +
		"};\n"
	assert.Equal(t, want, out.String())
}

func TestWrite_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, nil))
	assert.Equal(t, "\nstatic setting_t elems[] =\n{\n};\n", out.String())
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "display.schemas")
	second := filepath.Join(dir, "energy.schemas")
	require.NoError(t, os.WriteFile(first, []byte(displaySchemas), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(
		"<gconfschemafile><schemalist><schema><applyto>/energy/threshold</applyto><type>int</type><default>10</default></schema></schemalist></gconfschemafile>",
	), 0o644))

	entries, err := ParseFiles(first, second)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "/energy/threshold", entries[4].Key)

	_, err = ParseFiles(filepath.Join(dir, "missing.schemas"))
	require.Error(t, err)
	assert.True(t, mceerrors.HasCode(err, mceerrors.ErrCodeNotFound))
}

func TestTable_Render(t *testing.T) {
	tbl := &Table{Entries: []Entry{{Key: "/k", Type: "b", Default: "true"}}}

	var a, b bytes.Buffer
	require.NoError(t, tbl.Render(&a))
	require.NoError(t, Write(&b, tbl.Entries))
	assert.Equal(t, b.String(), a.String())
}
