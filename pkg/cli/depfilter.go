package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/nemomobile/mce-buildtools/pkg/depfilter"
)

func depfilterCmd() *cli.Command {
	return &cli.Command{
		Name:  "depfilter",
		Usage: "Normalize generated makefile dependency rules",
		Description: `Reads "gcc -MM" style dependency rules from stdin and writes them to stdout
with system headers removed, prerequisites sorted and targets placed next to
their primary source. Every rule is also emitted for the matching .pic.o object.

# Examples

  gcc -MM *.c modules/*.c | mcetools depfilter > .depend`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return depfilter.Filter(stdin(cmd), stdout(cmd))
		},
	}
}
