package depfilter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Rule
	}{
		{
			name:  "single line",
			input: "mce-io.o: mce-io.c mce-log.h mce-io.h\n",
			want:  []Rule{{Target: "mce-io.o", Sources: []string{"mce-io.c", "mce-io.h", "mce-log.h"}}},
		},
		{
			name: "continuations and system headers",
			input: "tklock.o: modules/../tklock.c /usr/include/stdio.h \\\n" +
				"  tklock.h \\\n" +
				"  /usr/include/glib-2.0/glib.h ./mce.h\n",
			want: []Rule{{Target: "tklock.o", Sources: []string{"tklock.c", "mce.h", "tklock.h"}}},
		},
		{
			name:  "target moves next to primary source",
			input: "display.o: modules/display.c modules/display.h\n",
			want:  []Rule{{Target: "modules/display.o", Sources: []string{"modules/display.c", "modules/display.h"}}},
		},
		{
			name:  "lines without colon skipped",
			input: "# comment\n\nfoo.o: foo.c\n",
			want:  []Rule{{Target: "foo.o", Sources: []string{"foo.c"}}},
		},
		{
			name:  "rule without prerequisites skipped",
			input: "phony:\nfoo.o: foo.c\n",
			want:  []Rule{{Target: "foo.o", Sources: []string{"foo.c"}}},
		},
		{
			name:  "dangling continuation at end of input",
			input: "foo.o: foo.c \\\n",
			want:  []Rule{{Target: "foo.o", Sources: []string{"foo.c"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort(t *testing.T) {
	rules := []Rule{
		{Target: "b.o", Sources: []string{"b.c"}},
		{Target: "a.o", Sources: []string{"x/a.c"}},
		{Target: "a.o", Sources: []string{"a.c", "z.h"}},
	}
	Sort(rules)
	assert.Equal(t, []string{"a.o", "a.o", "b.o"}, []string{rules[0].Target, rules[1].Target, rules[2].Target})
	assert.Equal(t, "a.c", rules[0].Sources[0])
}

func TestRule_PIC(t *testing.T) {
	r := Rule{Target: "modules/led.o", Sources: []string{"modules/led.c"}}
	assert.Equal(t, "modules/led.pic.o", r.PIC().Target)
	assert.Equal(t, r.Sources, r.PIC().Sources)
}

func TestFilter(t *testing.T) {
	input := "mce.o: mce.c mce.h /usr/include/glib.h datapipe.h\n" +
		"datapipe.o: datapipe.c \\\n datapipe.h\n"

	var out bytes.Buffer
	require.NoError(t, Filter(strings.NewReader(input), &out))

	want := "datapipe.o:\\\n\tdatapipe.c\\\n\tdatapipe.h\\\n\n" +
		"datapipe.pic.o:\\\n\tdatapipe.c\\\n\tdatapipe.h\\\n\n" +
		"mce.o:\\\n\tmce.c\\\n\tdatapipe.h\\\n\tmce.h\\\n\n" +
		"mce.pic.o:\\\n\tmce.c\\\n\tdatapipe.h\\\n\tmce.h\\\n\n"
	assert.Equal(t, want, out.String())
}

func TestFilter_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Filter(strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}
