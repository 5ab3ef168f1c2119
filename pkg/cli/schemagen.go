package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"github.com/nemomobile/mce-buildtools/pkg/schemagen"
)

func schemagenCmd() *cli.Command {
	return &cli.Command{
		Name:      "schemagen",
		Usage:     "Generate the builtin settings table from GConf schema files",
		ArgsUsage: "FILE...",
		Description: `Converts the <schema> entries of one or more GConf schema files into the
C array compiled into the builtin settings backend. Entries keep file order.

# Examples

  mcetools schemagen --output builtin-gconf.inc display.schemas energy.schemas`,
		Flags: []cli.Flag{
			newOutputFlag("Output file path (default: stdout)"),
			newFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return mceerrors.New(mceerrors.ErrCodeInvalidRequest, "at least one schema file is required")
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			entries, err := schemagen.ParseFiles(cmd.Args().Slice()...)
			if err != nil {
				return err
			}

			slog.Debug("generating settings table",
				slog.Int("files", cmd.Args().Len()),
				slog.Int("entries", len(entries)),
			)

			return serialize(ctx, cmd, outFormat, &schemagen.Table{Entries: entries})
		},
	}
}
