package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"github.com/nemomobile/mce-buildtools/pkg/serializer"
)

func newOutputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   serializer.StdoutURI,
		Usage:   usage,
	}
}

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatINI),
		Usage:   fmt.Sprintf("Output format %v, guessed from the --output extension when unset", serializer.SupportedFormats()),
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Without an explicit --format the format is guessed from the output path.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		return serializer.FormatFromPath(cmd.String("output")), nil
	}
	outFormat := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if outFormat.IsUnknown() {
		return "", mceerrors.New(mceerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q, valid formats are: %v", outFormat, serializer.SupportedFormats()))
	}
	return outFormat, nil
}

// serialize writes v to the --output destination and closes it.
func serialize(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return mceerrors.Wrap(mceerrors.ErrCodeUnavailable, "failed to open output", err)
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}

// stdin returns the root command's input stream.
func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// stdout returns the root command's output stream.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
