package serializer

// Output destination constants
const (
	// StdoutURI is the special URI indicating output should be written to stdout.
	StdoutURI = "-"

	// outputFileMode is used when creating output files. Generated configs
	// are installed world readable.
	outputFileMode = 0o644
)
